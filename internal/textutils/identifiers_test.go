package textutils

import (
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCpfCnpj(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"cpf", "CPF: 529.982.247-25 Unidade 101", "529.982.247-25", true},
		{"cnpj", "CNPJ 11.222.333/0001-81", "11.222.333/0001-81", true},
		{"first wins", "11.222.333/0001-81 e 529.982.247-25", "11.222.333/0001-81", true},
		{"unformatted ignored", "CPF 52998224725", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCpfCnpj(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIdentifierShapes(t *testing.T) {
	assert.True(t, IsCPF("529.982.247-25"))
	assert.False(t, IsCPF("11.222.333/0001-81"))
	assert.True(t, IsCNPJ("11.222.333/0001-81"))
	assert.False(t, IsCNPJ("529.982.247-25"))
}

func TestHasValidCheckDigits(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"529.982.247-25", true},
		{"529.982.247-24", false},
		{"11.222.333/0001-81", true},
		{"11.222.333/0001-80", false},
		{"123", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.valid, HasValidCheckDigits(tt.id))
		})
	}
}

func TestSplitLines(t *testing.T) {
	text := "  CONDOMÍNIO AURORA \r\n\n\tUnidade: 101\n   \nTotal: 10,00"
	assert.Equal(t, []string{"CONDOMÍNIO AURORA", "Unidade: 101", "Total: 10,00"}, SplitLines(text))
	assert.Empty(t, SplitLines(" \n \n"))
}

func TestTruncate(t *testing.T) {
	s, cut := Truncate("abcdef", 10)
	assert.False(t, cut)
	assert.Equal(t, "abcdef", s)

	s, cut = Truncate("abcdef", 3)
	assert.True(t, cut)
	assert.Equal(t, "abc", s)

	// "é" is two bytes; cutting in the middle backs off to the rune start.
	s, cut = Truncate("aé", 2)
	assert.True(t, cut)
	assert.Equal(t, "a", s)
	assert.True(t, utf8.ValidString(s))

	s, cut = Truncate("abc", 0)
	assert.False(t, cut)
	assert.Equal(t, "abc", s)
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Condomínio", "CONDOMINIO"},
		{"EDIFÍCIO SÃO JOÃO", "EDIFICIO SAO JOAO"},
		{"Associação", "ASSOCIACAO"},
		{"chácara", "CHACARA"},
		{"plain", "PLAIN"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fold(tt.input))
		})
	}
}

func TestKeywordSet(t *testing.T) {
	set := NewKeywordSet("Condomínio", "RESIDENCIAL", " ", "Edifício")

	assert.Equal(t, []string{"CONDOMINIO", "RESIDENCIAL", "EDIFICIO"}, set.Words())
	assert.True(t, set.Contains("Condomínio Edifício Aurora"))
	assert.True(t, set.Contains("residencial ipê"))
	assert.False(t, set.Contains("Demonstrativo de débitos"))
	assert.Equal(t, []string{"CONDOMINIO", "EDIFICIO"}, set.Matches("CONDOMINIO EDIFICIO AURORA"))
	assert.Nil(t, set.Matches("nada"))
}

func TestKeywordSet_EmptyAndNil(t *testing.T) {
	var nilSet *KeywordSet
	assert.False(t, nilSet.Contains("CONDOMINIO"))
	assert.False(t, NewKeywordSet().Contains("CONDOMINIO"))
}

func TestKeywordSet_Concurrent(t *testing.T) {
	set := NewKeywordSet("TOTAL", "PAGINA", "VENCIMENTO")
	var wg sync.WaitGroup
	results := make([]bool, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = set.Contains("Página 1 de 2")
			} else {
				results[i] = set.Contains("MARIA DA SILVA")
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		require.Equal(t, i%2 == 0, got, "goroutine %d", i)
	}
}
