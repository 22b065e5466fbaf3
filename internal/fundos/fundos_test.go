package fundos

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcSharesAreIndependentlyRounded(t *testing.T) {
	got := Calc(decimal.NewFromFloat(5188.50))

	assert.True(t, decimal.NewFromFloat(518.85).Equal(got.Detail["FUNDESP"]), "FUNDESP = %s", got.Detail["FUNDESP"])
	assert.True(t, decimal.NewFromFloat(311.31).Equal(got.Detail["FUNCOMP"]), "FUNCOMP = %s", got.Detail["FUNCOMP"])
	// 3% of 5188.50 is 155.655, which rounds half away from zero to 155.66.
	assert.True(t, decimal.NewFromFloat(155.66).Equal(got.Detail["FUNEMP"]), "FUNEMP = %s", got.Detail["FUNEMP"])
	assert.True(t, decimal.NewFromFloat(103.77).Equal(got.Detail["FERMOJU"]), "FERMOJU = %s", got.Detail["FERMOJU"])
	assert.True(t, decimal.NewFromFloat(103.77).Equal(got.Detail["FADEP"]), "FADEP = %s", got.Detail["FADEP"])
	// 1.25% of 5188.50 is 64.85625 -> 64.86.
	assert.True(t, decimal.NewFromFloat(64.86).Equal(got.Detail["FUNSEG"]), "FUNSEG = %s", got.Detail["FUNSEG"])
}

func TestCalcTotalIsSumOfRoundedShares(t *testing.T) {
	got := Calc(decimal.NewFromFloat(5188.50))

	// The raw sum (5188.50 * 24.25% = 1258.21125) would re-round to
	// 1258.21; the sum of the rounded shares is 1258.22.
	assert.True(t, decimal.NewFromFloat(1258.22).Equal(got.Total), "Total = %s", got.Total)
}

func TestCalcZeroBase(t *testing.T) {
	got := Calc(decimal.Zero)

	require.Len(t, got.Detail, 6)
	for nome, share := range got.Detail {
		assert.True(t, share.IsZero(), "%s = %s", nome, share)
	}
	assert.True(t, got.Total.IsZero())
}

func TestCalcWithCustomTable(t *testing.T) {
	tabela := Tabela{
		{Nome: "UNICO", Valor: decimal.NewFromFloat(50)},
	}
	got := CalcWith(decimal.NewFromFloat(10.01), tabela)

	// 5.005 rounds half away from zero to 5.01.
	assert.True(t, decimal.NewFromFloat(5.01).Equal(got.Detail["UNICO"]))
	assert.True(t, decimal.NewFromFloat(5.01).Equal(got.Total))
}

func TestNomesPreservesTableOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"FUNDESP", "FUNCOMP", "FUNEMP", "FERMOJU", "FADEP", "FUNSEG"},
		Default().Nomes(),
	)
}
