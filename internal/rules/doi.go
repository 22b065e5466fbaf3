// =============================================================================
// Cartorio Audit - DOI Rule Table
// =============================================================================

package rules

// doiRules is the rule table for real-estate operation declarations (the
// JSON lot format): declaration identity, date coherence against the
// processing clock, participation sums per role group and the usual party
// checks. The format has no attorney role and no OAB registrations.
func doiRules() ([]ActRule, []PartyRule) {
	actRules := []ActRule{
		requireHeaderField("numeroDeclaracao", "Número da declaração"),
		requireHeaderField(fieldTipoAto, "Tipo do ato"),
		validTipoAto(),
		cibCheck("cib"),
		dateCoherence("dataNegocio", "dataLavratura"),
		participationSum(
			"percentualParticipacao",
			"participacaoNaoInformadaParte",
			"participacaoNaoInformada",
		),
		minParties(),
	}
	partyRules := []PartyRule{
		roleAllowed(),
		documentChecks(""),
	}
	return actRules, partyRules
}
