// Package tui provides the interactive terminal picker used to restore a past
// recommendation's preferences.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/stylist/internal/cli"
	"github.com/Veraticus/stylist/internal/model"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// recordItem adapts a stored recommendation to the list component.
type recordItem struct {
	record model.RecommendationRecord
}

func (i recordItem) Title() string {
	return i.record.CreatedAt.Local().Format("2006-01-02 15:04") + "  " + i.record.Preferences.BudgetTier.Label()
}

func (i recordItem) Description() string {
	if desc := cli.DescribePreferences(i.record.Preferences); desc != "" {
		return desc
	}
	if i.record.Advice != "" {
		return i.record.Advice
	}
	return "no preferences"
}

func (i recordItem) FilterValue() string {
	return strings.Join([]string{cli.DescribePreferences(i.record.Preferences), i.record.Advice}, " ")
}

// RestoreModel lists recent recommendations and records which one the user
// picked. It quits on selection or cancel.
type RestoreModel struct {
	chosen   *model.RecommendationRecord
	keys     KeyMap
	list     list.Model
	canceled bool
}

// NewRestoreModel builds a picker over records, newest first as stored.
func NewRestoreModel(shopID string, records []model.RecommendationRecord) RestoreModel {
	items := make([]list.Item, 0, len(records))
	for _, r := range records {
		items = append(items, recordItem{record: r})
	}

	keys := DefaultKeyMap()
	l := list.New(items, list.NewDefaultDelegate(), defaultWidth, defaultHeight)
	l.Title = "Recent recommendations for " + shopID
	l.Styles.Title = cli.TitleStyle.UnsetMargins()
	l.SetStatusBarItemName("recommendation", "recommendations")
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Select, keys.Quit}
	}

	return RestoreModel{list: l, keys: keys}
}

// Init implements tea.Model.
func (m RestoreModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m RestoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.canceled = true
			return m, tea.Quit
		}
		// Typed filter text goes to the list untouched.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Select):
			item, ok := m.list.SelectedItem().(recordItem)
			if !ok {
				return m, nil
			}
			m.chosen = &item.record
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model. It renders nothing once the picker is done so
// the terminal is left clean.
func (m RestoreModel) View() string {
	if m.chosen != nil || m.canceled {
		return ""
	}
	return m.list.View()
}

// Choice returns the picked record. The second value is false when the user
// canceled or has not picked yet.
func (m RestoreModel) Choice() (model.RecommendationRecord, bool) {
	if m.chosen == nil {
		return model.RecommendationRecord{}, false
	}
	return *m.chosen, true
}
