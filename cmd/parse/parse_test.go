package parse

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"acordos/debt-parser/internal/config"
	"acordos/debt-parser/internal/container"
	"acordos/debt-parser/internal/logging"
	"acordos/debt-parser/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementXML = `<?xml version="1.0" encoding="UTF-8"?>
<cobranca>
	<condominio>Condomínio Edifício Aurora</condominio>
	<devedor><nome>MARIA DA SILVA</nome><cpf>529.982.247-25</cpf></devedor>
	<valor>900,00</valor>
	<vencimento>10/01/2024</vencimento>
	<parcelas>
		<parcela><descricao>Taxa condominial</descricao><valor>450,00</valor><vencimento>10/01/2024</vencimento></parcela>
		<parcela><descricao>Taxa condominial</descricao><valor>450,00</valor><vencimento>10/02/2024</vencimento></parcela>
	</parcelas>
</cobranca>`

func newTestContainer(t *testing.T) (*container.Container, *logging.MockLogger) {
	t.Helper()
	log := logging.NewMockLogger()
	c, err := container.NewContainer(config.Default(), container.WithLogger(log))
	require.NoError(t, err)
	return c, log
}

func TestCommandMetadata(t *testing.T) {
	assert.Equal(t, "parse", Cmd.Use)
	assert.NotNil(t, Cmd.Run)
	assert.NotNil(t, Cmd.Flags().Lookup("json"))
	assert.NotNil(t, Cmd.Flags().Lookup("items-csv"))
}

func TestRun(t *testing.T) {
	c, log := newTestContainer(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.xml")
	require.NoError(t, os.WriteFile(input, []byte(statementXML), 0600))
	itemsCSV := filepath.Join(dir, "itens.csv")

	var stdout bytes.Buffer
	err := Run(c, Options{Input: input, ItemsCSV: itemsCSV, Validate: true}, &stdout)
	require.NoError(t, err)

	var doc models.ParsedDocument
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "MARIA DA SILVA", doc.DebtorName)
	assert.Len(t, doc.DebtItems, 2)

	csvData, err := os.ReadFile(itemsCSV)
	require.NoError(t, err)
	assert.Equal(t, "date;description;amount\n10/01/2024;Taxa condominial;450.00\n10/02/2024;Taxa condominial;450.00\n", string(csvData))
	assert.True(t, log.HasEntry("INFO", "Statement parsed"))
}

func TestRun_JSONFile(t *testing.T) {
	c, _ := newTestContainer(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "statement.xml")
	require.NoError(t, os.WriteFile(input, []byte(statementXML), 0600))
	out := filepath.Join(dir, "out.json")

	var stdout bytes.Buffer
	require.NoError(t, Run(c, Options{Input: input, JSONOut: out}, &stdout))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cpfCnpj": "529.982.247-25"`)
}

func TestRun_Errors(t *testing.T) {
	c, _ := newTestContainer(t)
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.xml")
	require.NoError(t, os.WriteFile(empty, []byte("<cobranca><obs>nada</obs></cobranca>"), 0600))

	var stdout bytes.Buffer
	assert.Error(t, Run(c, Options{Input: filepath.Join(dir, "missing.pdf")}, &stdout))
	assert.Error(t, Run(c, Options{Input: empty}, &stdout))
}
