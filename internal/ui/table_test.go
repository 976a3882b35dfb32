package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/espenotterstad/svcdb/internal/svc"
)

func TestPadCell(t *testing.T) {
	cases := []struct {
		in string
		w  int
	}{
		{"ssh", 8},
		{"a-very-long-service-name", 8},
		{"téléphonie", 8},
		{"télé", 8},
		{"サービス", 8},
		{"", 4},
	}
	for _, c := range cases {
		out := padCell(c.in, c.w)
		require.True(t, utf8.ValidString(out), "padCell(%q, %d)", c.in, c.w)
		require.Equal(t, c.w, ansi.StringWidth(out), "padCell(%q, %d)", c.in, c.w)
	}
}

// Truncating a long multibyte description must cut between runes, never
// through one.
func TestRenderDataRowMultibyteDescription(t *testing.T) {
	r := svc.Record{
		Name: "telefonía", Port: 5060, Protocol: svc.UDP,
		Description: strings.Repeat("séance ", 20),
	}
	out := renderDataRow(r, false, 60)
	require.True(t, utf8.ValidString(out))
	require.LessOrEqual(t, ansi.StringWidth(out), 60-gutterWidth)
}
