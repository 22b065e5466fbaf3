// =============================================================================
// Cartorio Audit - Reconciliation Engine
// =============================================================================
//
// Compares the system-side ledger ("A", authoritative) against the audited
// guide file ("B") and emits the AuditReport. Monetary values compare on
// the raw parsed decimals with a tolerance of 0.01; display values are
// rounded to 2 places only at formatting time, so a sub-cent difference
// still reconciles. Non-monetary values compare by strict equality and
// never carry a difference figure.
//
// =============================================================================

package reconcile

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gmcunha/cartorio-audit/internal/fundos"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// tolerance under which two monetary values are considered equal.
var tolerance = decimal.NewFromFloat(0.01)

// Ledger is one side of a reconciliation.
type Ledger struct {
	Summary types.Summary
	Records []types.Record
}

// Compare reconciles the system ledger against the audited file. The fund
// table supplies the named fund labels of the summary comparison.
func Compare(sistema, arquivo Ledger, tabela fundos.Tabela) types.AuditReport {
	report := types.AuditReport{
		SummaryComparison: compareSummaries(sistema.Summary, arquivo.Summary, tabela),
		Timestamp:         time.Now(),
	}

	comparisons := compareRecords(sistema.Records, arquivo.Records)
	report.RecordComparisons = partition(comparisons)

	for _, rc := range comparisons {
		report.Statistics.TotalRegistros++
		switch rc.Status {
		case types.StatusOK:
			report.Statistics.Conferem++
		case types.StatusDivergente:
			report.Statistics.Divergentes++
		case types.StatusAusenteSistema:
			report.Statistics.AusentesSistema++
		case types.StatusAusenteArquivo:
			report.Statistics.AusentesArquivo++
		}
	}

	return report
}

// =============================================================================
// SUMMARY COMPARISON
// =============================================================================

// compareSummaries walks the fixed label list: quantity, guide total,
// emolument and judicial-fee totals, then each named fund.
func compareSummaries(a, b types.Summary, tabela fundos.Tabela) []types.ComparisonField {
	fields := []types.ComparisonField{
		plainField("Quantidade de Atos",
			strconv.Itoa(a.Quantidade), strconv.Itoa(b.Quantidade)),
		moneyField("Valor da Guia", a.ValorGuia, b.ValorGuia),
		moneyField("Emolumentos", a.Emolumentos, b.Emolumentos),
		moneyField("Taxa Judiciária", a.TaxaJudiciaria, b.TaxaJudiciaria),
	}
	for _, nome := range tabela.Nomes() {
		fields = append(fields, moneyField(nome,
			a.Fundos.Detail[nome], b.Fundos.Detail[nome]))
	}
	return fields
}

// =============================================================================
// RECORD COMPARISON
// =============================================================================

// compareRecords indexes both sides by trimmed order key and walks the
// union: A's keys in order, then B-only keys in B order.
func compareRecords(recordsA, recordsB []types.Record) []types.RecordComparison {
	indexA, orderA := index(recordsA)
	indexB, orderB := index(recordsB)

	var comparisons []types.RecordComparison

	for _, key := range orderA {
		ra := indexA[key]
		rb, ok := indexB[key]
		if !ok {
			comparisons = append(comparisons, types.RecordComparison{
				Key:    key,
				Status: types.StatusAusenteArquivo,
				Fields: recordFields(ra, types.Record{}),
			})
			continue
		}
		fields := recordFields(ra, rb)
		status := types.StatusOK
		for _, f := range fields {
			if f.Status != types.StatusOK {
				status = types.StatusDivergente
				break
			}
		}
		comparisons = append(comparisons, types.RecordComparison{
			Key: key, Status: status, Fields: fields,
		})
	}

	for _, key := range orderB {
		if _, ok := indexA[key]; ok {
			continue
		}
		comparisons = append(comparisons, types.RecordComparison{
			Key:    key,
			Status: types.StatusAusenteSistema,
			Fields: recordFields(types.Record{}, indexB[key]),
		})
	}

	return comparisons
}

// index maps trimmed keys to records, first occurrence winning, keeping
// key order.
func index(records []types.Record) (map[string]types.Record, []string) {
	byKey := make(map[string]types.Record, len(records))
	var order []string
	for _, r := range records {
		key := strings.TrimSpace(r.Pedido)
		if key == "" {
			continue
		}
		if _, ok := byKey[key]; ok {
			continue
		}
		byKey[key] = r
		order = append(order, key)
	}
	return byKey, order
}

// recordFields builds the per-record field comparison list.
func recordFields(a, b types.Record) []types.ComparisonField {
	return []types.ComparisonField{
		plainField("Quantidade",
			strconv.Itoa(a.Quantidade), strconv.Itoa(b.Quantidade)),
		moneyField("Emolumentos", a.Emolumento, b.Emolumento),
		moneyField("Taxa Judiciária", a.TaxaJudiciaria, b.TaxaJudiciaria),
		moneyField("Fundos", a.Fundos.Total, b.Fundos.Total),
		plainField("Código do Ato", a.Codigo, b.Codigo),
	}
}

// =============================================================================
// FIELD CONSTRUCTION
// =============================================================================

// moneyField compares raw decimals within tolerance. The difference is
// populated only on divergence.
func moneyField(label string, a, b decimal.Decimal) types.ComparisonField {
	f := types.ComparisonField{
		Label:  label,
		Status: types.StatusOK,
		ValueA: a.StringFixed(2),
		ValueB: b.StringFixed(2),
	}
	if a.Sub(b).Abs().GreaterThanOrEqual(tolerance) {
		f.Status = types.StatusDivergente
		diff := a.Sub(b).StringFixed(2)
		f.Difference = &diff
	}
	return f
}

// plainField compares by strict equality; no difference figure.
func plainField(label, a, b string) types.ComparisonField {
	f := types.ComparisonField{
		Label:  label,
		Status: types.StatusOK,
		ValueA: a,
		ValueB: b,
	}
	if a != b {
		f.Status = types.StatusDivergente
	}
	return f
}

// partition moves non-OK comparisons ahead of OK ones, preserving the
// relative order within each class.
func partition(comparisons []types.RecordComparison) []types.RecordComparison {
	out := make([]types.RecordComparison, 0, len(comparisons))
	for _, rc := range comparisons {
		if rc.Status != types.StatusOK {
			out = append(out, rc)
		}
	}
	for _, rc := range comparisons {
		if rc.Status == types.StatusOK {
			out = append(out, rc)
		}
	}
	return out
}
