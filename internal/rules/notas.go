// =============================================================================
// Cartorio Audit - Notas Rule Table
// =============================================================================

package rules

// notasRules is the rule table for notarial deed extracts: act type with
// conditional nature, party minimums, role admissibility and document
// checks.
func notasRules() ([]ActRule, []PartyRule) {
	actRules := []ActRule{
		requireHeaderField(fieldTipoAto, "Tipo do ato"),
		validTipoAto(),
		requireNaturezaForTipos(),
		minParties(),
	}
	partyRules := []PartyRule{
		roleAllowed(),
		procuradorRestrictions("dataNascimentoParte"),
		documentChecks("seccionalOAB"),
	}
	return actRules, partyRules
}
