package pdfparser

import (
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
)

// run spreads s over glyphs of width w starting at x on baseline y.
func run(s string, x, y, w float64) []pdf.Text {
	var out []pdf.Text
	for _, r := range s {
		out = append(out, pdf.Text{FontSize: 10, X: x, Y: y, W: w, S: string(r)})
		x += w
	}
	return out
}

func TestLayoutRows_OrdersTopToBottom(t *testing.T) {
	var glyphs []pdf.Text
	glyphs = append(glyphs, run("second", 50, 700, 5)...)
	glyphs = append(glyphs, run("first", 50, 760, 5)...)
	glyphs = append(glyphs, run("third", 50, 640.3, 5)...)

	assert.Equal(t, []string{"first", "second", "third"}, layoutRows(glyphs))
}

func TestLayoutRows_MergesSameBaseline(t *testing.T) {
	var glyphs []pdf.Text
	// Right-hand column drawn before the left-hand one.
	glyphs = append(glyphs, run("450,00", 400, 500.2, 5)...)
	glyphs = append(glyphs, run("Taxa", 50, 499.9, 5)...)

	assert.Equal(t, []string{"Taxa 450,00"}, layoutRows(glyphs))
}

func TestJoinGlyphs(t *testing.T) {
	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   string
	}{
		{
			name:   "adjacent glyphs",
			glyphs: run("MARIA", 10, 0, 6),
			want:   "MARIA",
		},
		{
			name:   "explicit space glyphs collapse",
			glyphs: append(run("A", 0, 0, 6), append(run("  ", 6, 0, 3), run("B", 12, 0, 6)...)...),
			want:   "A B",
		},
		{
			name:   "gap inserts space",
			glyphs: append(run("Total", 0, 0, 5), run("945,50", 100, 0, 5)...),
			want:   "Total 945,50",
		},
		{
			name:   "zero width glyphs keep stream order",
			glyphs: run("Unidade", 30, 0, 0),
			want:   "Unidade",
		},
		{
			name:   "empty glyphs skipped",
			glyphs: []pdf.Text{{S: ""}, {X: 1, W: 5, FontSize: 10, S: "x"}},
			want:   "x",
		},
		{
			name:   "newline glyph is whitespace",
			glyphs: append(run("a", 0, 0, 5), append([]pdf.Text{{X: 5, S: "\n"}}, run("b", 5, 0, 5)...)...),
			want:   "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, joinGlyphs(tt.glyphs))
		})
	}
}

func TestLayoutRows_DropsBlankRows(t *testing.T) {
	glyphs := append(run("   ", 0, 100, 3), run("text", 0, 80, 5)...)

	assert.Equal(t, []string{"text"}, layoutRows(glyphs))
}
