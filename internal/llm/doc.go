// Package llm provides the text generation and embedding collaborators used by
// the recommendation pipeline. It supports OpenAI, Anthropic and the local
// Claude Code CLI, with rate limiting and retries, and turns untrusted model
// text into structured product picks.
package llm
