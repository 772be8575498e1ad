package xmlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		keys   []string
		want   string
		wantOK bool
	}{
		{
			name: "key priority beats document order",
			doc:  `<doc><total>10,00</total><valor>20,00</valor></doc>`,
			keys: []string{"valor", "total"},
			want: "20,00", wantOK: true,
		},
		{
			name: "own key before children",
			doc:  `<doc><x><valor>1</valor></x><valor>2</valor></doc>`,
			keys: []string{"valor"},
			want: "2", wantOK: true,
		},
		{
			name: "document order among children",
			doc:  `<doc><x><valor>1</valor></x><y><valor>2</valor></y></doc>`,
			keys: []string{"valor"},
			want: "1", wantOK: true,
		},
		{
			name: "empty values skipped",
			doc:  `<doc><valor/><x><valor>  </valor><valor>3</valor></x></doc>`,
			keys: []string{"valor"},
			want: "3", wantOK: true,
		},
		{
			name: "case insensitive",
			doc:  `<doc><DUEDATE>2024-01-10</DUEDATE></doc>`,
			keys: []string{"dueDate"},
			want: "2024-01-10", wantOK: true,
		},
		{
			name:   "attributes keep their prefix",
			doc:    `<doc valor="5"/>`,
			keys:   []string{"valor"},
			wantOK: false,
		},
		{
			name: "prefixed key finds attribute",
			doc:  `<doc valor="5"/>`,
			keys: []string{"@_valor"},
			want: "5", wantOK: true,
		},
		{
			name: "inside arrays",
			doc:  `<doc><i><a>1</a></i><i><b>2</b></i></doc>`,
			keys: []string{"b"},
			want: "2", wantOK: true,
		},
		{
			name:   "blank keys ignored",
			doc:    `<doc><a>1</a></doc>`,
			keys:   []string{""},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := Find(mustTree(t, tt.doc), tt.keys...)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			got, _ := n.ScalarText()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind_ReturnsContainers(t *testing.T) {
	n, ok := Find(mustTree(t, `<doc><itens><v>1</v></itens><itens><v>2</v></itens></doc>`), "itens")

	require.True(t, ok)
	assert.Equal(t, Array, n.Kind)
}

func TestItemElements(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"repeated siblings", `<d><itens><v>1</v></itens><itens><v>2</v></itens></d>`, 2},
		{"wrapper around array", `<d><parcelas><parcela><v>1</v></parcela><parcela><v>2</v></parcela><parcela><v>3</v></parcela></parcelas></d>`, 3},
		{"wrapper around one item", `<d><parcelas><parcela><v>1</v></parcela></parcelas></d>`, 1},
		{"object with several keys", `<d><parcelas><v>1</v><w>2</w></parcelas></d>`, 0},
		{"wrapper around scalars", `<d><parcelas><v>1</v><v>2</v></parcelas></d>`, 2},
		{"scalar", `<d><parcelas>none</parcelas></d>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, ok := Find(mustTree(t, tt.doc), "parcelas", "itens")
			require.True(t, ok)
			assert.Len(t, itemElements(list), tt.want)
		})
	}
}
