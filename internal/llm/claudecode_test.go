package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaudeCodeClient_MissingBinary(t *testing.T) {
	_, err := newClaudeCodeClient(Config{ClaudeCodePath: "/nonexistent/claude-binary"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude CLI not found")
}

func TestParseClaudeCodeOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    string
		wantErr bool
	}{
		{
			name: "result envelope",
			out:  `{"type":"result","result":"{\"recommendation_text\":\"ok\"}","session_id":"abc","is_error":false}`,
			want: `{"recommendation_text":"ok"}`,
		},
		{
			name:    "error envelope",
			out:     `{"type":"result","result":"boom","is_error":true}`,
			wantErr: true,
		},
		{
			name:    "empty result",
			out:     `{"type":"result","result":""}`,
			wantErr: true,
		},
		{
			name: "plain text output",
			out:  "Wear the blue one.\n",
			want: "Wear the blue one.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClaudeCodeOutput([]byte(tt.out))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
