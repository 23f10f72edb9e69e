package llm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// claudeCodeClient implements Generator using the Claude Code CLI.
type claudeCodeClient struct {
	model    string
	cliPath  string
	timeout  time.Duration
	maxTurns int
}

// newClaudeCodeClient creates a new Claude Code CLI client.
func newClaudeCodeClient(cfg Config) (*claudeCodeClient, error) {
	cliPath := cfg.ClaudeCodePath
	if cliPath == "" {
		cliPath = "claude"
	}

	if _, err := exec.LookPath(cliPath); err != nil {
		return nil, fmt.Errorf("claude CLI not found at %s: ensure @anthropic-ai/claude-code is installed", cliPath)
	}

	model := cfg.Model
	if model == "" {
		model = "sonnet"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &claudeCodeClient{
		model:    model,
		cliPath:  cliPath,
		timeout:  timeout,
		maxTurns: 1,
	}, nil
}

// claudeCodeResponse represents the JSON response from Claude Code CLI.
type claudeCodeResponse struct {
	Result    string  `json:"result"`
	Type      string  `json:"type"`
	SessionID string  `json:"session_id"`
	IsError   bool    `json:"is_error"`
	TotalCost float64 `json:"total_cost_usd"`
}

// Generate runs a single-turn prompt through the CLI.
func (c *claudeCodeClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := []string{
		"-p", systemPrompt + "\n\n" + prompt,
		"--output-format", "json",
		"--model", c.model,
		"--max-turns", strconv.Itoa(c.maxTurns),
	}

	cmdCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(cmdCtx, c.cliPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("claude code error: %s", strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("failed to execute claude: %w", err)
	}

	return parseClaudeCodeOutput(stdout.Bytes())
}

// parseClaudeCodeOutput unwraps the CLI's JSON envelope. Output that is not an
// envelope is returned as-is so the pick parser can still recover from it.
func parseClaudeCodeOutput(out []byte) (string, error) {
	var response claudeCodeResponse
	if err := json.Unmarshal(out, &response); err != nil {
		return strings.TrimSpace(string(out)), nil
	}

	if response.IsError {
		return "", fmt.Errorf("claude code error in response")
	}

	if response.Result == "" {
		return "", fmt.Errorf("empty response from claude code")
	}

	return response.Result, nil
}
