// =============================================================================
// Cartorio Audit - Fund Breakdown Calculator
// =============================================================================
//
// Derives the statutory destination-fund amounts from a base emolument
// figure. The percentage table is fixed process-wide configuration; each
// share is rounded independently to 2 decimal places (half away from zero)
// and the breakdown total is the sum of the already-rounded shares, never
// a re-rounding of the raw sum. That matches how the funds are collected:
// each fund is settled on its own rounded amount.
//
// =============================================================================

package fundos

import (
	"github.com/shopspring/decimal"

	"github.com/gmcunha/cartorio-audit/internal/types"
)

// Percentual is one fund share definition.
type Percentual struct {
	// Nome is the fund name as it appears on guides and reports.
	Nome string

	// Valor is the percentage applied to the base figure.
	Valor decimal.Decimal
}

// Tabela is an ordered fund percentage table.
type Tabela []Percentual

// Default is the statutory table: FUNDESP 10%, FUNCOMP 6%, FUNEMP 3%,
// FERMOJU 2%, FADEP 2%, FUNSEG 1.25%.
func Default() Tabela {
	return Tabela{
		{Nome: "FUNDESP", Valor: decimal.NewFromFloat(10)},
		{Nome: "FUNCOMP", Valor: decimal.NewFromFloat(6)},
		{Nome: "FUNEMP", Valor: decimal.NewFromFloat(3)},
		{Nome: "FERMOJU", Valor: decimal.NewFromFloat(2)},
		{Nome: "FADEP", Valor: decimal.NewFromFloat(2)},
		{Nome: "FUNSEG", Valor: decimal.NewFromFloat(1.25)},
	}
}

// Nomes returns the fund names of the table, in table order. The
// reconciliation engine uses this to compare fund totals pairwise.
func (t Tabela) Nomes() []string {
	nomes := make([]string, len(t))
	for i, p := range t {
		nomes[i] = p.Nome
	}
	return nomes
}

// FromConfig builds a table from a name->percentage map plus an explicit
// order. Names missing from the map are skipped. An empty order yields the
// default table.
func FromConfig(percentuais map[string]float64, ordem []string) Tabela {
	if len(ordem) == 0 || len(percentuais) == 0 {
		return Default()
	}
	t := make(Tabela, 0, len(ordem))
	for _, nome := range ordem {
		pct, ok := percentuais[nome]
		if !ok {
			continue
		}
		t = append(t, Percentual{Nome: nome, Valor: decimal.NewFromFloat(pct)})
	}
	return t
}

// Calc applies the default table to a base amount.
func Calc(base decimal.Decimal) types.FundBreakdown {
	return CalcWith(base, Default())
}

// CalcWith applies a fund percentage table to a base amount.
//
// Each share is base*pct/100 rounded to 2 places half away from zero.
// Total is the sum of the rounded shares.
func CalcWith(base decimal.Decimal, tabela Tabela) types.FundBreakdown {
	cem := decimal.NewFromInt(100)
	detail := make(map[string]decimal.Decimal, len(tabela))
	total := decimal.Zero

	for _, p := range tabela {
		share := base.Mul(p.Valor).Div(cem).Round(2)
		detail[p.Nome] = share
		total = total.Add(share)
	}

	return types.FundBreakdown{Detail: detail, Total: total}
}
