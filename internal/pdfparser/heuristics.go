package pdfparser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"acordos/debt-parser/internal/models"
	"acordos/debt-parser/internal/store"
	"acordos/debt-parser/internal/textutils"
)

const upperName = `A-ZÁÀÂÃÉÊÍÓÔÕÚÇ`

var (
	// "<unit> - <NAME>" rows, e.g. "101 B - MARIA DA SILVA".
	debtorLinePattern = regexp.MustCompile(`(?i)^(\d+[A-Z0-9\s/]*?)\s+-\s+([` + upperName + `\s]{5,})$`)
	// A leading code token only counts as a code when it carries a digit.
	condoCodePrefix   = regexp.MustCompile(`^[A-Za-z0-9./-]*\d[A-Za-z0-9./-]*\s+`)
	condoTrailingNum  = regexp.MustCompile(`\s*\(\d+\)$`)
	fallbackNameShape = regexp.MustCompile(`^[` + upperName + `\s-]{8,50}$`)
)

// Heuristics locates debtor, condominium and unit information in the lines
// of a statement. It is built once from a profile and is safe for concurrent
// use.
type Heuristics struct {
	condoKeywords *textutils.KeywordSet
	denylist      *textutils.KeywordSet
	scanLines     int
	nameLabel     *regexp.Regexp
	unitLabel     *regexp.Regexp
	blockLabel    *regexp.Regexp
	blockLabels   *textutils.KeywordSet
}

// NewHeuristics compiles the label patterns of a profile. A nil profile
// means the built-in one.
func NewHeuristics(profile *store.Profile) *Heuristics {
	if profile == nil {
		profile = store.DefaultProfile()
	}
	scan := profile.CondominiumScanLines
	if scan <= 0 {
		scan = store.DefaultProfile().CondominiumScanLines
	}

	blockAlt := alternation(profile.BlockLabels)
	unitToken := `\d+[A-Z\d]*(?:\s*/\s*[A-Z\d]+)?`
	if blockAlt != "" {
		unitToken += `(?:\s+(?:` + blockAlt + `)\s*[:=]?\s*[A-Z\d]+)?`
	}

	h := &Heuristics{
		condoKeywords: textutils.NewKeywordSet(profile.CondominiumKeywords...),
		denylist:      textutils.NewKeywordSet(profile.NameDenylist...),
		scanLines:     scan,
		blockLabels:   textutils.NewKeywordSet(profile.BlockLabels...),
	}
	if alt := alternation(profile.NameLabels); alt != "" {
		h.nameLabel = regexp.MustCompile(`(?i)\b(?:` + alt + `)\s*[:=]?\s*([` + upperName + `\s-]{5,})`)
	}
	if alt := alternation(profile.UnitLabels); alt != "" {
		h.unitLabel = regexp.MustCompile(`(?i)\b(` + alt + `)\s*[:=]?\s*(` + unitToken + `)`)
	}
	if blockAlt != "" {
		h.blockLabel = regexp.MustCompile(`(?:^|\s)(?i:` + blockAlt + `)(?:\s*[:=]\s*|\s+)([A-Z0-9]{1,3})\b`)
	}
	return h
}

// alternation builds a regexp alternation of literal labels, longest first so
// "Apartamento" wins over "Apt".
func alternation(labels []string) string {
	quoted := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			quoted = append(quoted, regexp.QuoteMeta(l))
		}
	}
	for i := 1; i < len(quoted); i++ {
		for j := i; j > 0 && len(quoted[j]) > len(quoted[j-1]); j-- {
			quoted[j], quoted[j-1] = quoted[j-1], quoted[j]
		}
	}
	return strings.Join(quoted, "|")
}

// Apply runs every line heuristic against lines, filling b. Fields already
// set on b are kept, except the unit: a "<unit> - <NAME>" row pairs the two
// and replaces any unit found on an earlier line.
func (h *Heuristics) Apply(lines []string, b *models.DocumentBuilder) {
	if name, ok := h.CondominiumName(lines); ok {
		b.WithCondominiumName(name)
	}

	for _, line := range lines {
		if !b.HasDebtorName() {
			if unit, name, ok := h.debtorLine(line); ok {
				b.SetUnit(unit).WithDebtorName(name)
			}
		}
		if !b.HasDebtorName() {
			if name, ok := h.labeledName(line); ok {
				b.WithDebtorName(name)
			}
		}
		if !b.HasUnit() {
			if unit, block, ok := h.labeledUnit(line); ok {
				b.WithUnit(unit)
				if block != "" {
					b.WithBlock(block)
				}
			}
		}
		if block, ok := h.labeledBlock(line); ok {
			b.WithBlock(block)
		}
	}

	if !b.HasDebtorName() {
		if name, ok := h.FallbackName(lines); ok {
			b.WithDebtorName(name)
		}
	}
}

// CondominiumName returns the first condominium-looking line among the first
// scan lines, stripped of a leading code and a trailing "(123)".
func (h *Heuristics) CondominiumName(lines []string) (string, bool) {
	for i := 0; i < len(lines) && i < h.scanLines; i++ {
		if !h.condoKeywords.Contains(lines[i]) {
			continue
		}
		name := condoCodePrefix.ReplaceAllString(lines[i], "")
		name = strings.TrimSpace(condoTrailingNum.ReplaceAllString(name, ""))
		if utf8.RuneCountInString(name) > 5 {
			return name, true
		}
	}
	return "", false
}

// FallbackName returns the first all-caps line of 8 to 50 characters that is
// neither a structural heading nor a condominium name.
func (h *Heuristics) FallbackName(lines []string) (string, bool) {
	for _, line := range lines {
		if !fallbackNameShape.MatchString(line) {
			continue
		}
		if h.denylist.Contains(line) || h.condoKeywords.Contains(line) {
			continue
		}
		return strings.TrimSpace(line), true
	}
	return "", false
}

func (h *Heuristics) debtorLine(line string) (unit, name string, ok bool) {
	m := debtorLinePattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), true
}

func (h *Heuristics) labeledName(line string) (string, bool) {
	if h.nameLabel == nil {
		return "", false
	}
	m := h.nameLabel.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(strings.SplitN(m[1], "-", 2)[0])
	if utf8.RuneCountInString(name) <= 3 {
		return "", false
	}
	return name, true
}

// labeledUnit prefers a unit label over a block label used as a unit
// ("Bloco 3 Apto 101" gives unit 101), falling back to the block label match.
func (h *Heuristics) labeledUnit(line string) (unit, block string, ok bool) {
	if h.unitLabel == nil {
		return "", "", false
	}
	matches := h.unitLabel.FindAllStringSubmatch(line, -1)
	if len(matches) == 0 {
		return "", "", false
	}
	chosen := matches[0]
	for _, m := range matches {
		if !h.isBlockLabel(m[1]) {
			chosen = m
			break
		}
	}
	unit, block = h.splitUnit(strings.TrimSpace(chosen[2]))
	return unit, block, unit != ""
}

// splitUnit separates an embedded block clause: "101 Bloco B" is unit 101,
// block B.
func (h *Heuristics) splitUnit(unit string) (string, string) {
	if h.blockLabel == nil {
		return unit, ""
	}
	loc := h.blockLabel.FindStringSubmatchIndex(unit)
	if loc == nil || loc[0] == 0 {
		return unit, ""
	}
	return strings.TrimSpace(unit[:loc[0]]), unit[loc[2]:loc[3]]
}

func (h *Heuristics) labeledBlock(line string) (string, bool) {
	if h.blockLabel == nil {
		return "", false
	}
	m := h.blockLabel.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (h *Heuristics) isBlockLabel(label string) bool {
	return h.blockLabels.Contains(label)
}
