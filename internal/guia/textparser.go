// =============================================================================
// Cartorio Audit - Ledger Text Parser
// =============================================================================
//
// Streaming state machine over line-oriented text extracted from a billing
// guide. The extraction itself (OCR, page rasterization) happens upstream;
// this parser only classifies the resulting lines.
//
// PARSING STRATEGY:
//   1. SCANNING: waiting for a 4-digit act code opening a record
//   2. IN_RECORD: accumulating description lines until the value tuple
//      (quantity + four monetary figures) arrives
//   3. An 8-digit order number emits the open record and returns to
//      SCANNING
//
// Orthogonal to the two states, a sticky selo situation flag (Desconhecido,
// Isento, Utilizado) persists across records until a recognized status line
// changes it. Noise lines (headers, separators, page marks) never alter
// state.
//
// =============================================================================

package guia

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gmcunha/cartorio-audit/internal/fundos"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// ErrNoRecords is returned when the text yields no billing records at all.
var ErrNoRecords = errors.New("guia: no billing records found in text")

// Sticky selo situation values.
const (
	SituacaoDesconhecido = "Desconhecido"
	SituacaoIsento       = "Isento"
	SituacaoUtilizado    = "Utilizado"
)

const (
	stateScanning = iota
	stateInRecord
)

var (
	// 4-digit act code opening a record; the remainder starts the
	// description.
	reRecordStart = regexp.MustCompile(`^\s*(\d{4})\s+(.+)$`)

	// Quantity followed by four monetary figures (emolumento, taxa
	// judiciária, ISS, total) closing a record. Anchored at end of line so
	// it also matches when trailing a single-line record's description.
	reValueTuple = regexp.MustCompile(
		`(\d+)\s+(\d{1,3}(?:\.\d{3})*,\d{2})\s+(\d{1,3}(?:\.\d{3})*,\d{2})\s+(\d{1,3}(?:\.\d{3})*,\d{2})\s+(\d{1,3}(?:\.\d{3})*,\d{2})\s*$`)

	// 8-digit order/batch number on a line of its own.
	rePedido = regexp.MustCompile(`^\s*(\d{8})\s*$`)

	// Monetary figure, Brazilian convention.
	reMoney = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d{2}`)

	// Column headers, page marks and rulers carried over from extraction.
	reNoise = regexp.MustCompile(`(?i)^\s*($|[-=_*.\s]+$|p[áa]gina\b|c[óo]digo\b|descri[çc][ãa]o\b|qtde?\b|emolumentos?\s+taxa|cart[óo]rio\b|tabeli[ãa]o\b)`)
)

// totalsMarker starts the footer region holding the guide total.
const totalsMarker = "Totais:"

// TotalLocator extracts the guide total from the footer lines following
// the last totals marker. threshold is the smallest plausible value (the
// judicial-fee total plus the largest fund share); the locator is
// best-effort and returns zero when nothing qualifies.
type TotalLocator func(footer []string, threshold decimal.Decimal) decimal.Decimal

// largestAboveThreshold is the default locator: the largest monetary
// figure in the footer exceeding the threshold.
func largestAboveThreshold(footer []string, threshold decimal.Decimal) decimal.Decimal {
	best := decimal.Zero
	for _, line := range footer {
		for _, tok := range reMoney.FindAllString(line, -1) {
			v, err := ParseMoney(tok)
			if err != nil {
				continue
			}
			if v.GreaterThan(threshold) && v.GreaterThan(best) {
				best = v
			}
		}
	}
	return best
}

// ParseMoney parses a Brazilian-convention monetary figure ("1.234,56").
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

// TextParser turns extracted guide text into Records plus a Summary.
type TextParser struct {
	tabela      fundos.Tabela
	locateTotal TotalLocator
}

// NewTextParser builds a parser over the given fund table.
func NewTextParser(tabela fundos.Tabela) *TextParser {
	return &TextParser{
		tabela:      tabela,
		locateTotal: largestAboveThreshold,
	}
}

// WithTotalLocator swaps the footer heuristic.
func (p *TextParser) WithTotalLocator(l TotalLocator) *TextParser {
	p.locateTotal = l
	return p
}

// Parse runs the state machine over the full text.
func (p *TextParser) Parse(text string) ([]types.Record, types.Summary, error) {
	lines := strings.Split(text, "\n")

	var (
		records  []types.Record
		current  *types.Record
		state    = stateScanning
		situacao = SituacaoDesconhecido
	)

	emit := func(pedido string) {
		if current == nil {
			return
		}
		current.Pedido = pedido
		current.Descricao = strings.TrimSpace(current.Descricao)
		records = append(records, *current)
		current = nil
		state = stateScanning
	}

	for _, line := range lines {
		if s, ok := situacaoOf(line); ok {
			situacao = s
			continue
		}

		if m := rePedido.FindStringSubmatch(line); m != nil {
			emit(m[1])
			continue
		}

		if m := reRecordStart.FindStringSubmatch(line); m != nil {
			// A new code while a record is still open closes the previous
			// one without an order number.
			emit("")

			current = &types.Record{
				Codigo:   m[1],
				Situacao: situacao,
			}
			state = stateInRecord

			rest := m[2]
			if vm := reValueTuple.FindStringSubmatchIndex(rest); vm != nil {
				// Single-line record: description and values together.
				current.Descricao = strings.TrimSpace(rest[:vm[0]])
				p.fillValues(current, reValueTuple.FindStringSubmatch(rest))
			} else {
				current.Descricao = rest
			}
			continue
		}

		if state == stateInRecord {
			if m := reValueTuple.FindStringSubmatch(line); m != nil {
				p.fillValues(current, m)
				continue
			}
			if !reNoise.MatchString(line) {
				current.Descricao += " " + strings.TrimSpace(line)
			}
			continue
		}

		// SCANNING: everything else is noise.
	}
	emit("")

	if len(records) == 0 {
		return nil, types.Summary{}, ErrNoRecords
	}

	return records, p.summarize(records, lines), nil
}

// fillValues applies a matched value tuple to the open record.
func (p *TextParser) fillValues(r *types.Record, m []string) {
	r.Quantidade, _ = strconv.Atoi(m[1])
	r.Emolumento, _ = ParseMoney(m[2])
	r.TaxaJudiciaria, _ = ParseMoney(m[3])
	r.ISS, _ = ParseMoney(m[4])
	r.Total, _ = ParseMoney(m[5])
	r.Fundos = fundos.CalcWith(r.Emolumento, p.tabela)
}

// summarize aggregates the records and locates the guide total on the
// footer region after the last totals marker.
func (p *TextParser) summarize(records []types.Record, lines []string) types.Summary {
	s := types.Summary{}
	for _, r := range records {
		s.Quantidade += r.Quantidade
		s.Emolumentos = s.Emolumentos.Add(r.Emolumento)
		s.TaxaJudiciaria = s.TaxaJudiciaria.Add(r.TaxaJudiciaria)
		s.ISS = s.ISS.Add(r.ISS)
	}
	s.Fundos = fundos.CalcWith(s.Emolumentos, p.tabela)

	footer := footerAfterLastMarker(lines)
	threshold := s.TaxaJudiciaria.Add(largestShare(s.Fundos))
	s.ValorGuia = p.locateTotal(footer, threshold)
	return s
}

// footerAfterLastMarker returns the lines after the last totals marker,
// including the remainder of the marker line itself.
func footerAfterLastMarker(lines []string) []string {
	start := -1
	var rest string
	for i, line := range lines {
		if idx := strings.Index(line, totalsMarker); idx >= 0 {
			start = i
			rest = line[idx+len(totalsMarker):]
		}
	}
	if start < 0 {
		return nil
	}
	footer := []string{rest}
	footer = append(footer, lines[start+1:]...)
	return footer
}

// largestShare returns the biggest single fund amount of a breakdown.
func largestShare(b types.FundBreakdown) decimal.Decimal {
	best := decimal.Zero
	for _, v := range b.Detail {
		if v.GreaterThan(best) {
			best = v
		}
	}
	return best
}

// situacaoOf recognizes the selo status lines.
func situacaoOf(line string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(line))
	switch {
	case strings.HasPrefix(upper, "SELO ISENTO"), upper == "ISENTO":
		return SituacaoIsento, true
	case strings.HasPrefix(upper, "SELO UTILIZADO"), upper == "UTILIZADO":
		return SituacaoUtilizado, true
	}
	return "", false
}
