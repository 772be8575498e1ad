// Package store loads the heuristic profile: the keyword and label lists that
// steer the statement parsers.
package store

// Profile is the set of keyword and label lists used by the PDF heuristics and
// the key names used by the XML search. Lists present in a profile file replace
// the built-in ones; absent lists keep their defaults.
type Profile struct {
	CondominiumKeywords  []string   `yaml:"condominium_keywords"`
	CondominiumScanLines int        `yaml:"condominium_scan_lines"`
	NameLabels           []string   `yaml:"name_labels"`
	UnitLabels           []string   `yaml:"unit_labels"`
	BlockLabels          []string   `yaml:"block_labels"`
	NameDenylist         []string   `yaml:"name_denylist"`
	XML                  XMLProfile `yaml:"xml"`
}

// XMLProfile lists candidate element names per logical field, plus optional
// XPath expressions that take precedence over the key search.
type XMLProfile struct {
	AmountKeys          []string          `yaml:"amount_keys"`
	DateKeys            []string          `yaml:"date_keys"`
	NameKeys            []string          `yaml:"name_keys"`
	IdentifierKeys      []string          `yaml:"identifier_keys"`
	ItemListKeys        []string          `yaml:"item_list_keys"`
	UnitKeys            []string          `yaml:"unit_keys"`
	BlockKeys           []string          `yaml:"block_keys"`
	CondominiumKeys     []string          `yaml:"condominium_keys"`
	ItemDescriptionKeys []string          `yaml:"item_description_keys"`
	ItemAmountKeys      []string          `yaml:"item_amount_keys"`
	ItemDateKeys        []string          `yaml:"item_date_keys"`
	XPaths              map[string]string `yaml:"xpaths,omitempty"`
}

// Logical field names accepted as XPath override keys.
const (
	FieldAmount      = "amount"
	FieldDueDate     = "due_date"
	FieldDebtorName  = "debtor_name"
	FieldCpfCnpj     = "cpf_cnpj"
	FieldUnit        = "unit"
	FieldBlock       = "block"
	FieldCondominium = "condominium_name"
)

// DefaultProfile returns the built-in lists.
func DefaultProfile() *Profile {
	return &Profile{
		CondominiumKeywords: []string{
			"CONDOMINIO", "RESIDENCIAL", "EDIFICIO", "CHACARA", "VILA",
			"LOTEAMENTO", "CONJUNTO", "EMPRESARIAL", "ASSOCIACAO",
		},
		CondominiumScanLines: 10,
		NameLabels: []string{
			"Devedor", "Proprietário", "Proprietario", "Morador", "Condômino", "Condomino",
			"Nome", "Cliente", "Sacado", "Favorecido", "Responsável", "Responsavel",
		},
		UnitLabels: []string{
			"Unidade", "Apartamento", "Apto", "Apt", "Unid", "Sala", "Lote",
			"Loja", "Box", "Casa", "Bloco", "Quadra", "Qd", "Lt",
		},
		BlockLabels: []string{"Bloco", "Bl.", "Torre"},
		NameDenylist: []string{
			"DEMONSTRATIVO", "RELATORIO", "INADIMPLENCIA", "DOCUMENTO", "TOTAL",
			"SUBTOTAL", "VENCIMENTO", "UNIDADE", "PAGINA",
		},
		XML: XMLProfile{
			AmountKeys:          []string{"valor", "total", "amount"},
			DateKeys:            []string{"data", "vencimento", "dueDate"},
			NameKeys:            []string{"nome", "pagador", "devedor"},
			IdentifierKeys:      []string{"cpf", "cnpj", "documento"},
			ItemListKeys:        []string{"parcelas", "itens", "items", "debitos"},
			UnitKeys:            []string{"unidade", "apto", "unit"},
			BlockKeys:           []string{"bloco", "block", "torre"},
			CondominiumKeys:     []string{"condominio", "condominium", "edificio"},
			ItemDescriptionKeys: []string{"descricao", "description"},
			ItemAmountKeys:      []string{"valor", "amount"},
			ItemDateKeys:        []string{"vencimento", "dueDate"},
		},
	}
}
