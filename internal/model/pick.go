package model

// PickSource records which parser stage produced an AiPick.
type PickSource string

// Pick sources, in the order the parser tries them.
const (
	PickStructured         PickSource = "structured"
	PickPartiallyRecovered PickSource = "partially_recovered"
	PickRawText            PickSource = "raw_text"
)

// AiPick is the structured reading of the text generator's answer.
// Titles reference products by display title; the model has no id channel.
type AiPick struct {
	Source       PickSource
	Narrative    string
	ColorPalette []string
	Titles       []string
}
