package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("STYLIST_DATA", "/srv/stylist")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde", in: "~", want: home},
		{name: "tilde prefix", in: "~/.local/share/stylist/stylist.db", want: filepath.Join(home, ".local/share/stylist/stylist.db")},
		{name: "env var", in: "$STYLIST_DATA/stylist.db", want: "/srv/stylist/stylist.db"},
		{name: "tilde user left alone", in: "~bob/db", want: "~bob/db"},
		{name: "cleaned", in: "/tmp//catalog/../catalog/", want: "/tmp/catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
