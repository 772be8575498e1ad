package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"acordos/debt-parser/internal/calculator"
	"acordos/debt-parser/internal/currencyutils"
	"acordos/debt-parser/internal/dateutils"
	"acordos/debt-parser/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	marginMM      = 14.0
	lineHeight    = 5.0
	rowHeight     = 7.0
	bottomMargin  = 20.0
	signatureRoom = 60.0
)

// Header band colour of every table (slate).
var headerFill = [3]int{71, 85, 105}

// AgreementTitle heads every rendered agreement.
const AgreementTitle = "MINUTA DE ACORDO DE PARCELAMENTO"

// pdfWriter wraps an fpdf document with the cp1252 translator core fonts need.
type pdfWriter struct {
	doc   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

func newPDFWriter() *pdfWriter {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(marginMM, 20, marginMM)
	doc.SetAutoPageBreak(true, bottomMargin)
	w, _ := doc.GetPageSize()
	return &pdfWriter{
		doc:   doc,
		tr:    doc.UnicodeTranslatorFromDescriptor(""),
		width: w - 2*marginMM,
	}
}

func (p *pdfWriter) font(style string, size float64) {
	p.doc.SetFont("Helvetica", style, size)
}

func (p *pdfWriter) centered(text string) {
	p.doc.CellFormat(0, lineHeight, p.tr(text), "", 1, "C", false, 0, "")
}

func (p *pdfWriter) line(text string) {
	p.doc.CellFormat(0, lineHeight, p.tr(text), "", 1, "L", false, 0, "")
}

func (p *pdfWriter) heading(text string) {
	p.font("B", 12)
	p.doc.CellFormat(0, rowHeight, p.tr(text), "", 1, "L", false, 0, "")
	p.font("", 10)
}

func (p *pdfWriter) paragraph(text string) {
	p.doc.MultiCell(0, lineHeight, p.tr(text), "", "J", false)
}

// table draws a bordered grid. The last column is right-aligned; a non-empty
// foot is drawn in bold over the header colour.
func (p *pdfWriter) table(widths []float64, head []string, rows [][]string, foot []string) {
	align := func(i int) string {
		if i == len(widths)-1 {
			return "R"
		}
		return "L"
	}
	band := func(cells []string) {
		p.doc.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		p.doc.SetTextColor(255, 255, 255)
		p.font("B", 10)
		for i, c := range cells {
			p.doc.CellFormat(widths[i], rowHeight, p.tr(c), "1", 0, align(i), true, 0, "")
		}
		p.doc.Ln(-1)
		p.doc.SetTextColor(0, 0, 0)
		p.font("", 9)
	}

	band(head)
	for _, row := range rows {
		for i, c := range row {
			p.doc.CellFormat(widths[i], rowHeight, p.tr(c), "1", 0, align(i), false, 0, "")
		}
		p.doc.Ln(-1)
	}
	if len(foot) > 0 {
		band(foot)
	}
	p.font("", 10)
	p.doc.Ln(4)
}

func (g *Generator) renderPDF(bundle *models.AgreementBundle) ([]byte, error) {
	now := g.opts.Now()
	sim := bundle.Simulation
	res := bundle.Result
	debtor := bundle.Debtor

	p := newPDFWriter()
	p.doc.SetTitle(AgreementTitle, true)
	p.doc.SetCreationDate(now)
	p.doc.AddPage()

	p.font("B", 16)
	p.doc.CellFormat(0, 10, p.tr(AgreementTitle), "", 1, "C", false, 0, "")
	p.font("", 10)
	p.centered(fmt.Sprintf("Gerado em: %s às %s", dateutils.FormatBR(now), now.Format("15:04:05")))
	p.centered("Simulação Nº: " + sim.ShortID())
	p.doc.Ln(8)

	p.heading("DADOS DO DEVEDOR")
	p.line("Nome: " + debtor.Name)
	unit := debtor.Unit
	if debtor.Block != "" {
		unit += " - Bloco " + debtor.Block
	}
	p.line("Unidade: " + unit)
	p.line("CPF/CNPJ: " + debtor.CpfCnpj)
	p.doc.Ln(2)

	p.heading("DADOS DO CREDOR")
	p.line("Condomínio: " + debtor.CondominiumName)
	p.doc.Ln(4)

	if len(bundle.DebtItems) > 0 {
		p.heading("DÉBITOS EM ABERTO")
		rows := make([][]string, 0, len(bundle.DebtItems))
		for _, item := range bundle.DebtItems {
			rows = append(rows, []string{
				dateutils.FormatBR(item.DueDate), item.Description, currencyutils.FormatBRL(item.Amount),
			})
		}
		p.table([]float64{30, p.width - 70, 40},
			[]string{"Vencimento", "Descrição", "Valor"}, rows, nil)
	}

	p.heading("DISCRIMINAÇÃO DA DÍVIDA ORIGINAL")
	p.table([]float64{p.width - 50, 50},
		[]string{"Descrição", "Valor"},
		[][]string{
			{"Valor Principal", currencyutils.FormatBRL(res.Principal)},
			{fmt.Sprintf("Multa Moratória (%s)", currencyutils.FormatPercent(sim.Parameters.PenaltyRate)), currencyutils.FormatBRL(res.Penalty)},
			{fmt.Sprintf("Juros de Mora (%d dias)", res.DaysLate), currencyutils.FormatBRL(res.Interest)},
			{"Correção Monetária", currencyutils.FormatBRL(res.Correction)},
			{fmt.Sprintf("Honorários Advocatícios (%s)", currencyutils.FormatPercent(sim.Parameters.FeeRate)), currencyutils.FormatBRL(res.Fee)},
		},
		[]string{"TOTAL DA DÍVIDA", currencyutils.FormatBRL(res.Total)})

	p.heading("RESUMO DO ACORDO")
	p.line("Total do Acordo: " + currencyutils.FormatBRL(res.Total))
	p.line("Entrada: " + currencyutils.FormatBRL(res.DownPayment))
	p.line("Número de Parcelas: " + strconv.Itoa(len(res.Installments)))
	if len(res.Installments) > 0 {
		p.line("Valor da Parcela: " + currencyutils.FormatBRL(res.Installments[0].Amount))
	}
	p.doc.Ln(4)

	if len(res.Installments) > 0 {
		p.heading("CRONOGRAMA DE PAGAMENTO")
		rows := make([][]string, 0, len(res.Installments))
		for _, inst := range res.Installments {
			rows = append(rows, []string{
				fmt.Sprintf("Parcela %d", inst.Number),
				dateutils.FormatBR(inst.DueDate),
				currencyutils.FormatBRL(inst.Amount),
			})
		}
		p.table([]float64{(p.width - 50) / 2, (p.width - 50) / 2, 50},
			[]string{"Parcela", "Vencimento", "Valor"}, rows, nil)
	}

	p.heading("CLÁUSULAS DO ACORDO")
	p.font("", 9)
	for i, clause := range clauses(sim.Parameters, res) {
		p.paragraph(fmt.Sprintf("%d. %s", i+1, clause))
		p.doc.Ln(1)
	}

	_, pageHeight := p.doc.GetPageSize()
	if p.doc.GetY() > pageHeight-signatureRoom {
		p.doc.AddPage()
	}
	p.font("", 10)
	p.doc.Ln(10)
	p.centered(fmt.Sprintf("%s, %s", g.opts.City, dateutils.FormatBR(now)))
	p.doc.Ln(20)

	y := p.doc.GetY()
	p.doc.Line(40, y, 90, y)
	p.doc.Line(120, y, 170, y)
	p.doc.SetY(y + 2)
	p.doc.SetX(40)
	p.doc.CellFormat(50, lineHeight, "Devedor", "", 0, "C", false, 0, "")
	p.doc.SetX(120)
	p.doc.CellFormat(50, lineHeight, "Credor", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clauses(params models.SimulationParameters, res models.CalculationResult) []string {
	breach := calculator.BreachPenalty(res.Remaining, params.BreachPenaltyRate)
	out := []string{
		"O devedor compromete-se a efetuar o pagamento da entrada e das parcelas nas datas estabelecidas no cronograma acima.",
		fmt.Sprintf("Em caso de inadimplemento de qualquer parcela, será aplicada multa de %s sobre o saldo devedor remanescente (%s sobre o saldo atual de %s).",
			currencyutils.FormatPercent(params.BreachPenaltyRate),
			currencyutils.FormatBRL(breach),
			currencyutils.FormatBRL(res.Remaining)),
		"O atraso no pagamento superior a 30 (trinta) dias implicará no vencimento antecipado de todas as parcelas.",
		"O presente acordo é celebrado de forma irrevogável e irretratável.",
	}
	if res.DownPayment.IsPositive() {
		out[0] = strings.Replace(out[0], "da entrada",
			"da entrada de "+currencyutils.FormatBRL(res.DownPayment), 1)
	}
	return out
}
