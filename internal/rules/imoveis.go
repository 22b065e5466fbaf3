// =============================================================================
// Cartorio Audit - Imoveis Rule Table
// =============================================================================

package rules

// imoveisRules is the rule table for real-estate registry extracts. On top
// of the notas-style rules it verifies the property identifier (CIB) check
// character.
func imoveisRules() ([]ActRule, []PartyRule) {
	actRules := []ActRule{
		requireHeaderField(fieldTipoAto, "Tipo do ato"),
		validTipoAto(),
		requireNaturezaForTipos(),
		cibCheck("cib"),
		minParties(),
	}
	partyRules := []PartyRule{
		roleAllowed(),
		procuradorRestrictions("dataNascimentoParte"),
		documentChecks("seccionalOAB"),
	}
	return actRules, partyRules
}
