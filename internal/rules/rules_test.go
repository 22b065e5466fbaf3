package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

var refDate = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func engine(t *testing.T, domain string) *Engine {
	t.Helper()
	e, err := NewEngine(domain, config.DefaultTables())
	require.NoError(t, err)
	return e.WithNow(refDate)
}

func act(line int, header map[string]string, parties ...types.Party) *types.LogicalAct {
	return &types.LogicalAct{
		Key:     "k",
		Label:   "Livro 101 / Folha 25",
		Line:    line,
		Header:  header,
		Parties: parties,
	}
}

func party(line int, nome, docTipo, doc, papel string, campos map[string]string) types.Party {
	if campos == nil {
		campos = map[string]string{}
	}
	return types.Party{
		Line: line, Nome: nome,
		TipoDocumento: docTipo, Documento: doc, Papel: papel,
		Campos: campos,
	}
}

func categories(findings []types.Finding) []types.FindingCategory {
	cats := make([]types.FindingCategory, len(findings))
	for i, f := range findings {
		cats[i] = f.Category
	}
	return cats
}

// =============================================================================
// NOTAS
// =============================================================================

func TestNotasCleanActHasNoFindings(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "11", "natureza": "1"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	assert.True(t, res.Success)
	assert.Empty(t, res.Findings)
}

func TestNotasMissingTipoAto(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, types.CategoriaObrigatoriedade, f.Category)
	assert.Equal(t, "tipoAto", f.Field)
	assert.Equal(t, 3, f.Line)
	assert.Equal(t, "Livro 101 / Folha 25", f.Location)
}

func TestNotasUnknownTipoAtoOffersOptions(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "99"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, types.CategoriaDominio, f.Category)
	require.Len(t, f.Options, 5)
	assert.Equal(t, "11", f.Options[0].ID)
	assert.Equal(t, "Escritura de Compra e Venda", f.Options[0].Label)
}

func TestNotasNaturezaRequiredForSaleAndDonation(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "11"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, types.CategoriaObrigatoriedade, f.Category)
	assert.Equal(t, "natureza", f.Field)
	assert.Contains(t, f.Message, "Escritura de Compra e Venda")
	// Options come from the nature dictionary, id-ordered.
	require.Len(t, f.Options, 3)
	assert.Equal(t, "Onerosa", f.Options[0].Label)
}

func TestNotasNaturezaNotRequiredForOtherTypes(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "15"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
	)})

	assert.Empty(t, res.Findings)
}

func TestNotasMinimumParties(t *testing.T) {
	e := engine(t, config.DomainNotas)

	// Divorce requires two parties.
	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "13"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
	)})

	require.Len(t, res.Findings, 1)
	assert.Equal(t, types.CategoriaNegocio, res.Findings[0].Category)
	assert.Contains(t, res.Findings[0].Message, "no mínimo 2")
}

func TestNotasRoleNotAllowedForType(t *testing.T) {
	e := engine(t, config.DomainNotas)

	// Witness (5) is not admitted on a sale deed (11).
	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "11", "natureza": "1"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "5", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, types.CategoriaDominio, f.Category)
	assert.Equal(t, "papelParte", f.Field)
	assert.Equal(t, "JOSE", f.PartyName)
	assert.Equal(t, 4, f.Line)
	// Options restricted to the allowed set, in code order.
	require.Len(t, f.Options, 4)
	assert.Equal(t, "1", f.Options[0].ID)
	assert.Equal(t, "7", f.Options[3].ID)
}

func TestNotasProcuradorRestrictions(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "11", "natureza": "1"},
		party(3, "CARLOS", "CPF", "11144477735", "7",
			map[string]string{"dataNascimentoParte": "01/01/1980"}),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	require.Len(t, res.Findings, 2)
	assert.Equal(t, types.CategoriaNegocio, res.Findings[0].Category)
	assert.Contains(t, res.Findings[0].Message, "primeira parte")
	assert.Equal(t, types.CategoriaFormato, res.Findings[1].Category)
	assert.Equal(t, "dataNascimentoParte", res.Findings[1].Field)
}

func TestNotasDocumentChecks(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "11", "natureza": "1"},
		party(3, "MARIA", "CPF", "11144477736", "1", nil),
		party(4, "EMPRESA", "CNPJ", "123", "2", nil),
		party(5, "ADV", "OAB", "12345", "3", nil),
	)})

	require.Len(t, res.Findings, 3)
	assert.Equal(t, []types.FindingCategory{
		types.CategoriaMatematica,
		types.CategoriaFormato,
		types.CategoriaObrigatoriedade,
	}, categories(res.Findings))
	assert.Equal(t, "seccionalOAB", res.Findings[2].Field)
}

func TestNotasOABWithSeccionalPasses(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "15"},
		party(3, "ADV", "OAB", "12345", "1",
			map[string]string{"seccionalOAB": "CE"}),
	)})

	assert.Empty(t, res.Findings)
}

// =============================================================================
// PROCURACAO
// =============================================================================

func TestProcuracaoReferentClusterRequired(t *testing.T) {
	e := engine(t, config.DomainProcuracao)

	// Revocation (03) requires the full prior-act cluster.
	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "03", "livroAnterior": "10"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	// One finding per missing cluster member.
	require.Len(t, res.Findings, 2)
	assert.Equal(t, "folhaAnterior", res.Findings[0].Field)
	assert.Equal(t, "cartorioAnterior", res.Findings[1].Field)
	for _, f := range res.Findings {
		assert.Equal(t, types.CategoriaObrigatoriedade, f.Category)
		assert.Contains(t, f.Message, "Revogação")
	}
}

func TestProcuracaoSubcodigoTriggersReferent(t *testing.T) {
	e := engine(t, config.DomainProcuracao)

	// A plain power of attorney (01) with a sub-code also needs the cluster.
	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "01", "subcodigo": "2"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	assert.Len(t, res.Findings, 3)
}

func TestProcuracaoWithoutReferentTrigger(t *testing.T) {
	e := engine(t, config.DomainProcuracao)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "01"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	assert.Empty(t, res.Findings)
}

// =============================================================================
// IMOVEIS
// =============================================================================

func TestImoveisCIBCheck(t *testing.T) {
	e := engine(t, config.DomainImoveis)

	res := e.Validate([]*types.LogicalAct{act(3,
		map[string]string{"tipoAto": "21", "natureza": "1", "cib": "12345670"},
		party(3, "MARIA", "CPF", "11144477735", "1", nil),
		party(4, "JOSE", "CPF", "52998224725", "2", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, types.CategoriaMatematica, f.Category)
	assert.Equal(t, "cib", f.Field)
}

func TestImoveisValidCIBAndAbsentCIBPass(t *testing.T) {
	e := engine(t, config.DomainImoveis)

	for _, header := range []map[string]string{
		{"tipoAto": "21", "natureza": "1", "cib": "12345679"},
		{"tipoAto": "21", "natureza": "1"},
	} {
		res := e.Validate([]*types.LogicalAct{act(3, header,
			party(3, "MARIA", "CPF", "11144477735", "1", nil),
			party(4, "JOSE", "CPF", "52998224725", "2", nil),
		)})
		assert.Empty(t, res.Findings)
	}
}

// =============================================================================
// DOI
// =============================================================================

func doiHeader(extra map[string]string) map[string]string {
	h := map[string]string{
		"numeroDeclaracao": "0001",
		"tipoAto":          "1",
		"dataNegocio":      "10/01/2026",
		"dataLavratura":    "15/01/2026",
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}

func doiParty(line int, nome, papel, pct string, flags map[string]string) types.Party {
	campos := map[string]string{"percentualParticipacao": pct}
	for k, v := range flags {
		campos[k] = v
	}
	return party(line, nome, "CPF", "11144477735", papel, campos)
}

func TestDOICleanDeclaration(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1, doiHeader(nil),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "60", nil),
		doiParty(3, "ANA", "2", "39.5", nil),
	)})

	assert.Empty(t, res.Findings)
}

func TestDOIParticipationSumOutOfRange(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1, doiHeader(nil),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "50", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, types.CategoriaNegocio, f.Category)
	assert.Contains(t, f.Message, "Adquirente")
	assert.Contains(t, f.Message, "50")
}

func TestDOIGroupFlagDisablesSum(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1,
		doiHeader(map[string]string{"participacaoNaoInformada": "1"}),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "50", nil),
	)})

	assert.Empty(t, res.Findings)
}

func TestDOIMemberFlagExcludesFromSum(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1, doiHeader(nil),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "99.5", nil),
		doiParty(3, "ANA", "2", "40",
			map[string]string{"participacaoNaoInformadaParte": "S"}),
	)})

	assert.Empty(t, res.Findings)
}

func TestDOIZeroPercentNeedsMemberFlag(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1, doiHeader(nil),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "100", nil),
		doiParty(3, "ANA", "2", "0", nil),
	)})

	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, "ANA", f.PartyName)
	assert.Contains(t, f.Message, "0%")
}

func TestDOIDateCoherence(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1,
		doiHeader(map[string]string{
			"dataNegocio":   "20/01/2026",
			"dataLavratura": "15/01/2026",
		}),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "100", nil),
	)})

	require.Len(t, res.Findings, 1)
	assert.Equal(t, types.CategoriaNegocio, res.Findings[0].Category)
	assert.Contains(t, res.Findings[0].Message, "posterior à data de lavratura")
}

func TestDOIFutureDate(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1,
		doiHeader(map[string]string{"dataLavratura": "01/01/2027"}),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "100", nil),
	)})

	require.Len(t, res.Findings, 1)
	assert.Equal(t, types.CategoriaNegocio, res.Findings[0].Category)
	assert.Contains(t, res.Findings[0].Message, "posterior à data de processamento")
}

func TestDOIMalformedDateIsFormato(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1,
		doiHeader(map[string]string{"dataNegocio": "31/31/2026"}),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "100", nil),
	)})

	require.Len(t, res.Findings, 1)
	assert.Equal(t, types.CategoriaFormato, res.Findings[0].Category)
	assert.Equal(t, "dataNegocio", res.Findings[0].Field)
}

func TestDOIAcceptsISODates(t *testing.T) {
	e := engine(t, config.DomainDOI)

	res := e.Validate([]*types.LogicalAct{act(1,
		doiHeader(map[string]string{
			"dataNegocio":   "2026-01-10",
			"dataLavratura": "2026-01-15",
		}),
		doiParty(1, "MARIA", "1", "100", nil),
		doiParty(2, "JOSE", "2", "100", nil),
	)})

	assert.Empty(t, res.Findings)
}

// =============================================================================
// ENGINE
// =============================================================================

func TestNewEngineUnknownDomain(t *testing.T) {
	_, err := NewEngine("protesto", config.DefaultTables())
	assert.Error(t, err)
}

func TestRootFailure(t *testing.T) {
	res := RootFailure("documento sem atos")

	assert.False(t, res.Success)
	require.Len(t, res.Findings, 1)
	f := res.Findings[0]
	assert.Equal(t, 0, f.Line)
	assert.Equal(t, "documento", f.Location)
	assert.Equal(t, types.CategoriaSchema, f.Category)
}

func TestFindingsAccumulateAcrossActs(t *testing.T) {
	e := engine(t, config.DomainNotas)

	res := e.Validate([]*types.LogicalAct{
		act(3, map[string]string{"tipoAto": "11"},
			party(3, "MARIA", "CPF", "11144477735", "1", nil),
			party(4, "JOSE", "CPF", "52998224725", "2", nil)),
		act(5, map[string]string{"tipoAto": "13"},
			party(5, "ANA", "CPF", "11144477735", "1", nil)),
	})

	assert.True(t, res.Success)
	assert.Len(t, res.Findings, 2)
}
