// =============================================================================
// Cartorio Audit - Procuracao Rule Table
// =============================================================================

package rules

// Prior-act referent fields required by derived power-of-attorney acts
// (substitution, revocation, renunciation) and by any act carrying a
// sub-code.
var procuracaoReferentCluster = []string{
	"livroAnterior", "folhaAnterior", "cartorioAnterior",
}

var procuracaoReferentLabels = map[string]string{
	"livroAnterior":    "Livro",
	"folhaAnterior":    "Folha",
	"cartorioAnterior": "Cartório",
}

// procuracaoRules is the rule table for power-of-attorney extracts. The
// grouping key already carries the complements, so the act rules focus on
// the referent cluster.
func procuracaoRules() ([]ActRule, []PartyRule) {
	actRules := []ActRule{
		requireHeaderField(fieldTipoAto, "Tipo do ato"),
		validTipoAto(),
		requireReferentCluster("subcodigo", procuracaoReferentCluster, procuracaoReferentLabels),
		minParties(),
	}
	partyRules := []PartyRule{
		roleAllowed(),
		procuradorRestrictions("dataNascimentoParte"),
		documentChecks("seccionalOAB"),
	}
	return actRules, partyRules
}
