// =============================================================================
// Cartorio Audit - Ledger Tabular Parser
// =============================================================================
//
// Reads the system-exported billing spreadsheet and produces the same
// Record/Summary shape as the text parser, so the reconciliation engine is
// source-agnostic. Header wording varies between export versions, so the
// column map is built by substring matching over a scanned header row.
//
// =============================================================================

package guia

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/gmcunha/cartorio-audit/internal/fundos"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// ErrNoHeader is returned when no recognizable header row exists within
// the scanned region.
var ErrNoHeader = errors.New("guia: header row not found in spreadsheet")

// headerScanRows bounds the header search.
const headerScanRows = 15

// Logical column names resolved from the header row.
const (
	colPedido     = "pedido"
	colAto        = "ato"
	colQuantidade = "quantidade"
	colEmolumento = "emolumento"
	colTaxa       = "taxa"
	colISS        = "iss"
	colTotal      = "total"
	colData       = "data"
)

// headerMarkers maps logical columns to the substrings that identify
// them, checked in order against the lowercased header cells.
var headerMarkers = map[string][]string{
	colPedido:     {"pedido"},
	colAto:        {"tipo de ato", "ato praticado", "ato"},
	colQuantidade: {"qtd", "quant"},
	colEmolumento: {"emol"},
	colTaxa:       {"taxa"},
	colISS:        {"iss"},
	colTotal:      {"total"},
	colData:       {"data"},
}

// Leading 4-digit act code on the act-type cell.
var reActCode = regexp.MustCompile(`^\s*(\d{4})`)

// PlanilhaParser turns spreadsheet rows into Records plus a Summary.
type PlanilhaParser struct {
	tabela fundos.Tabela
}

// NewPlanilhaParser builds a parser over the given fund table.
func NewPlanilhaParser(tabela fundos.Tabela) *PlanilhaParser {
	return &PlanilhaParser{tabela: tabela}
}

// Parse reads the first sheet of the workbook.
func (p *PlanilhaParser) Parse(r io.Reader) ([]types.Record, types.Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, types.Summary{}, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, types.Summary{}, errors.New("guia: spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, types.Summary{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return p.ParseRows(rows)
}

// ParseRows runs the row pipeline. Split out of Parse so the tests can
// feed rows directly.
func (p *PlanilhaParser) ParseRows(rows [][]string) ([]types.Record, types.Summary, error) {
	headerIdx, cols, err := locateHeader(rows)
	if err != nil {
		return nil, types.Summary{}, err
	}

	var (
		records []types.Record
		summary types.Summary
		dated   bool
	)

	for _, row := range rows[headerIdx+1:] {
		pedido := strings.TrimSpace(cell(row, cols[colPedido]))
		if pedido == "" || strings.Contains(strings.ToLower(pedido), "total") {
			continue
		}

		ato := cell(row, cols[colAto])
		m := reActCode.FindStringSubmatch(ato)
		if m == nil {
			continue
		}

		rec := types.Record{
			Pedido:    pedido,
			Codigo:    m[1],
			Descricao: strings.TrimSpace(ato),
			Situacao:  SituacaoDesconhecido,
		}
		rec.Quantidade = parseCount(cell(row, cols[colQuantidade]))
		rec.Emolumento = parseNumber(cell(row, cols[colEmolumento]))
		rec.TaxaJudiciaria = parseNumber(cell(row, cols[colTaxa]))
		rec.ISS = parseNumber(cell(row, cols[colISS]))
		rec.Total = parseNumber(cell(row, cols[colTotal]))
		rec.Fundos = fundos.CalcWith(rec.Emolumento, p.tabela)

		if !dated {
			if ref, ok := parseCellDate(cell(row, cols[colData])); ok {
				summary.Competencia = ref.Format("01/2006")
				summary.Decendio = decendioOf(ref.Day())
				dated = true
			}
		}

		summary.Quantidade += rec.Quantidade
		summary.Emolumentos = summary.Emolumentos.Add(rec.Emolumento)
		summary.TaxaJudiciaria = summary.TaxaJudiciaria.Add(rec.TaxaJudiciaria)
		summary.ISS = summary.ISS.Add(rec.ISS)
		summary.ValorGuia = summary.ValorGuia.Add(rec.Total)

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, types.Summary{}, ErrNoRecords
	}

	summary.Fundos = fundos.CalcWith(summary.Emolumentos, p.tabela)
	return records, summary, nil
}

// locateHeader scans the top rows for one carrying both the order marker
// and an act-type marker, then resolves the column map.
func locateHeader(rows [][]string) (int, map[string]int, error) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for i := 0; i < limit; i++ {
		var hasPedido, hasAto bool
		for _, c := range rows[i] {
			lc := strings.ToLower(c)
			if strings.Contains(lc, "pedido") {
				hasPedido = true
			}
			if strings.Contains(lc, "ato") {
				hasAto = true
			}
		}
		if hasPedido && hasAto {
			return i, mapColumns(rows[i]), nil
		}
	}
	return 0, nil, ErrNoHeader
}

// mapColumns resolves each logical column to the first header cell
// containing one of its markers. Unresolved columns map to -1.
func mapColumns(header []string) map[string]int {
	cols := make(map[string]int, len(headerMarkers))
	for name := range headerMarkers {
		cols[name] = -1
	}
	for idx, c := range header {
		lc := strings.ToLower(c)
		for name, markers := range headerMarkers {
			if cols[name] >= 0 {
				continue
			}
			for _, marker := range markers {
				if strings.Contains(lc, marker) {
					cols[name] = idx
					break
				}
			}
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// parseNumber accepts both the Brazilian convention ("1.234,56") and the
// plain numeric form excelize yields for number-typed cells.
func parseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		if v, err := ParseMoney(s); err == nil {
			return v
		}
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// parseCellDate accepts the layouts the exports are known to emit.
func parseCellDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"02/01/2006", "2006-01-02", "01-02-06", "02/01/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// decendioOf buckets a day of month into the three statutory ranges.
func decendioOf(day int) int {
	switch {
	case day <= 10:
		return 1
	case day <= 20:
		return 2
	default:
		return 3
	}
}
