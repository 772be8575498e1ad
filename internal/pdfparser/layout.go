package pdfparser

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

const (
	defaultFontSize = 10.0
	// gapFactor is the horizontal gap, in font-size units, that separates two
	// words when the PDF carries no explicit space glyph.
	gapFactor = 0.25
)

type textRow struct {
	y      float64
	glyphs []pdf.Text
}

// layoutRows groups positioned glyphs into visual lines, top to bottom. Glyphs
// sharing a baseline form one row; within a row they are ordered by X, keeping
// stream order for glyphs at the same position (fonts without width tables
// report every glyph of a run at the run's origin).
func layoutRows(glyphs []pdf.Text) []string {
	byY := make(map[int64]*textRow)
	var rows []*textRow
	for _, g := range glyphs {
		key := int64(math.Round(g.Y))
		row, ok := byY[key]
		if !ok {
			row = &textRow{y: g.Y}
			byY[key] = row
			rows = append(rows, row)
		}
		row.glyphs = append(row.glyphs, g)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := strings.TrimSpace(joinGlyphs(row.glyphs)); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func joinGlyphs(glyphs []pdf.Text) string {
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var sb strings.Builder
	var prevEnd float64
	prevSpace := true
	for i, g := range glyphs {
		if g.S == "" {
			continue
		}
		isSpace := strings.TrimFunc(g.S, unicode.IsSpace) == ""
		if isSpace {
			if !prevSpace {
				sb.WriteByte(' ')
				prevSpace = true
			}
			continue
		}

		size := g.FontSize
		if size <= 0 {
			size = defaultFontSize
		}
		if i > 0 && !prevSpace && g.X-prevEnd > size*gapFactor {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.S)
		prevSpace = false
		prevEnd = math.Max(prevEnd, g.X+g.W)
	}
	return sb.String()
}
