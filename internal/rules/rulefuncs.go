// =============================================================================
// Cartorio Audit - Shared Rule Constructors
// =============================================================================
//
// The rule shapes common to the filing domains. Each constructor closes
// over its parameters and returns a pure ActRule or PartyRule; the domain
// files assemble their tables from these plus their own specific rules.
//
// =============================================================================

package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gmcunha/cartorio-audit/internal/checksum"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// Document type codes as filed on the party records.
const (
	docCPF  = "CPF"
	docCNPJ = "CNPJ"
	docOAB  = "OAB"
)

// Role code of an attorney-in-fact across the extract domains.
const papelProcurador = "7"

// Accepted date layouts on filings.
var dateLayouts = []string{"02/01/2006", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// truthy reports whether a flag field is set.
func truthy(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "S", "SIM", "TRUE":
		return true
	}
	return false
}

// =============================================================================
// CONDITIONAL REQUIREDNESS
// =============================================================================

// requireNaturezaForTipos requires the nature field whenever the act type
// is in the table's NaturezaObrigatoriaPara set. The finding carries the
// nature dictionary as guided-correction options.
func requireNaturezaForTipos() ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		tipo := act.HeaderField(fieldTipoAto)
		if !contains(ctx.Tables.NaturezaObrigatoriaPara, tipo) {
			return nil
		}
		if strings.TrimSpace(act.HeaderField(fieldNatureza)) != "" {
			return nil
		}
		f := actFinding(act, ctx, types.CategoriaObrigatoriedade, fieldNatureza,
			fmt.Sprintf("Natureza é obrigatória para atos do tipo %s",
				ctx.Tables.LabelTipoAto(tipo)))
		f.Options = optionsFrom(ctx.Tables.Naturezas)
		return []types.Finding{f}
	}
}

// validTipoAto checks a filled act-type code against the domain table.
// Requiredness is a separate rule; an empty code passes here.
func validTipoAto() ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		tipo := strings.TrimSpace(act.HeaderField(fieldTipoAto))
		if tipo == "" {
			return nil
		}
		if _, ok := ctx.Tables.TipoAto[tipo]; ok {
			return nil
		}
		f := actFinding(act, ctx, types.CategoriaDominio, fieldTipoAto,
			fmt.Sprintf("Tipo de ato %q não consta na tabela do domínio", tipo))
		f.Options = optionsFrom(ctx.Tables.TipoAto)
		return []types.Finding{f}
	}
}

// requireHeaderField unconditionally requires an act-level field.
func requireHeaderField(field, label string) ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		if strings.TrimSpace(act.HeaderField(field)) != "" {
			return nil
		}
		return []types.Finding{actFinding(act, ctx, types.CategoriaObrigatoriedade,
			field, label+" não informado")}
	}
}

// =============================================================================
// CROSS-REFERENCE REQUIREDNESS
// =============================================================================

// requireReferentCluster requires the prior-act pointer fields together
// whenever the act type is in ReferenteObrigatorioPara or the sub-code
// field is set. Each missing member is a separate finding.
func requireReferentCluster(subcodeField string, cluster []string, labels map[string]string) ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		required := contains(ctx.Tables.ReferenteObrigatorioPara, act.HeaderField(fieldTipoAto))
		if !required && subcodeField != "" {
			required = strings.TrimSpace(act.HeaderField(subcodeField)) != ""
		}
		if !required {
			return nil
		}

		var findings []types.Finding
		for _, field := range cluster {
			if strings.TrimSpace(act.HeaderField(field)) != "" {
				continue
			}
			label := labels[field]
			if label == "" {
				label = field
			}
			findings = append(findings, actFinding(act, ctx,
				types.CategoriaObrigatoriedade, field,
				fmt.Sprintf("%s do ato anterior é obrigatório para %s",
					label, ctx.Tables.LabelTipoAto(act.HeaderField(fieldTipoAto)))))
		}
		return findings
	}
}

// =============================================================================
// CARDINALITY
// =============================================================================

// minParties enforces the per-act-type minimum party count.
func minParties() ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		min := ctx.Tables.MinPartesFor(act.HeaderField(fieldTipoAto))
		if min <= 0 || len(act.Parties) >= min {
			return nil
		}
		return []types.Finding{actFinding(act, ctx, types.CategoriaNegocio, "",
			fmt.Sprintf("Ato exige no mínimo %d parte(s); foram informadas %d",
				min, len(act.Parties)))}
	}
}

// =============================================================================
// PARTY ROLE RULES
// =============================================================================

// roleAllowed checks the party's role against the allowed set for the act
// type. Unknown act types accept any known role.
func roleAllowed() PartyRule {
	return func(slot int, p *types.Party, act *types.LogicalAct, ctx *Context) []types.Finding {
		tipo := act.HeaderField(fieldTipoAto)
		allowed, ok := ctx.Tables.PapeisPorTipo[tipo]
		if !ok {
			return nil
		}
		if contains(allowed, p.Papel) {
			return nil
		}
		f := partyFinding(p, act, ctx, types.CategoriaDominio,
			ctx.Domain.PartyRoleField,
			fmt.Sprintf("Papel %q não é admitido em %s",
				p.Papel, ctx.Tables.LabelTipoAto(tipo)))
		f.Options = optionsFor(ctx.Tables.Papeis, allowed)
		return []types.Finding{f}
	}
}

// procuradorRestrictions applies the attorney-specific sub-rules: the
// role cannot occupy the first party slot, and it forbids a birth date.
func procuradorRestrictions(birthField string) PartyRule {
	return func(slot int, p *types.Party, act *types.LogicalAct, ctx *Context) []types.Finding {
		if p.Papel != papelProcurador {
			return nil
		}
		var findings []types.Finding
		if slot == 0 {
			findings = append(findings, partyFinding(p, act, ctx,
				types.CategoriaNegocio, ctx.Domain.PartyRoleField,
				"Procurador não pode figurar como primeira parte do ato"))
		}
		if birthField != "" && strings.TrimSpace(p.Campo(birthField)) != "" {
			findings = append(findings, partyFinding(p, act, ctx,
				types.CategoriaFormato, birthField,
				"Data de nascimento não deve ser informada para procurador"))
		}
		return findings
	}
}

// =============================================================================
// DOCUMENT RULES
// =============================================================================

// documentChecks validates the party document: CPF check digits, CNPJ
// shape, and the jurisdiction section required by OAB registrations.
func documentChecks(seccionalField string) PartyRule {
	return func(slot int, p *types.Party, act *types.LogicalAct, ctx *Context) []types.Finding {
		var findings []types.Finding
		switch strings.ToUpper(strings.TrimSpace(p.TipoDocumento)) {
		case docCPF:
			if !checksum.ValidCPF(p.Documento) {
				findings = append(findings, partyFinding(p, act, ctx,
					types.CategoriaMatematica, ctx.Domain.PartyDocField,
					fmt.Sprintf("CPF %q inválido: dígitos verificadores não conferem", p.Documento)))
			}
		case docCNPJ:
			if !checksum.ValidCNPJ(p.Documento) {
				findings = append(findings, partyFinding(p, act, ctx,
					types.CategoriaFormato, ctx.Domain.PartyDocField,
					fmt.Sprintf("CNPJ %q inválido: são esperados 14 dígitos", p.Documento)))
			}
		case docOAB:
			if seccionalField != "" && strings.TrimSpace(p.Campo(seccionalField)) == "" {
				findings = append(findings, partyFinding(p, act, ctx,
					types.CategoriaObrigatoriedade, seccionalField,
					"Seccional da OAB é obrigatória para documento OAB"))
			}
		}
		return findings
	}
}

// cibCheck validates the property identifier check character when the
// field is present.
func cibCheck(field string) ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		cib := strings.TrimSpace(act.HeaderField(field))
		if cib == "" {
			return nil
		}
		if checksum.ValidCIB(cib) {
			return nil
		}
		return []types.Finding{actFinding(act, ctx, types.CategoriaMatematica,
			field, fmt.Sprintf("CIB %q inválido: caractere verificador não confere", cib))}
	}
}

// =============================================================================
// DATE COHERENCE
// =============================================================================

// dateCoherence enforces negocio <= lavratura and forbids future dates.
// Unparseable non-empty dates are Formato findings.
func dateCoherence(negocioField, lavraturaField string) ActRule {
	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		var findings []types.Finding
		today := ctx.Now.Truncate(24 * time.Hour)

		parse := func(field string) (time.Time, bool) {
			raw := strings.TrimSpace(act.HeaderField(field))
			if raw == "" {
				return time.Time{}, false
			}
			t, ok := parseDate(raw)
			if !ok {
				findings = append(findings, actFinding(act, ctx,
					types.CategoriaFormato, field,
					fmt.Sprintf("Data %q em formato inválido", raw)))
				return time.Time{}, false
			}
			if t.After(today) {
				findings = append(findings, actFinding(act, ctx,
					types.CategoriaNegocio, field,
					fmt.Sprintf("Data %q é posterior à data de processamento", raw)))
			}
			return t, true
		}

		negocio, okN := parse(negocioField)
		lavratura, okL := parse(lavraturaField)
		if okN && okL && negocio.After(lavratura) {
			findings = append(findings, actFinding(act, ctx,
				types.CategoriaNegocio, negocioField,
				"Data do negócio não pode ser posterior à data de lavratura"))
		}
		return findings
	}
}

// =============================================================================
// PARTICIPATION SUM
// =============================================================================

// participationSum enforces, per role group, that participation
// percentages sum to [99,100] after 2-place rounding, unless the group's
// not-stated flag is set. A member at exactly 0% must itself carry the
// member-level flag.
func participationSum(pctField, memberFlagField, groupFlagField string) ActRule {
	lower := decimal.NewFromInt(99)
	upper := decimal.NewFromInt(100)

	return func(act *types.LogicalAct, ctx *Context) []types.Finding {
		if truthy(act.HeaderField(groupFlagField)) {
			return nil
		}

		var findings []types.Finding
		groups := make(map[string][]*types.Party)
		var order []string
		for i := range act.Parties {
			p := &act.Parties[i]
			if _, ok := groups[p.Papel]; !ok {
				order = append(order, p.Papel)
			}
			groups[p.Papel] = append(groups[p.Papel], p)
		}

		for _, papel := range order {
			sum := decimal.Zero
			for _, p := range groups[papel] {
				if truthy(p.Campo(memberFlagField)) {
					continue
				}
				pct, err := decimal.NewFromString(strings.TrimSpace(p.Campo(pctField)))
				if err != nil {
					continue
				}
				if pct.IsZero() {
					findings = append(findings, partyFinding(p, act, ctx,
						types.CategoriaNegocio, pctField,
						"Participação de 0% exige a marcação de participação não informada"))
				}
				sum = sum.Add(pct)
			}

			sum = sum.Round(2)
			if sum.IsZero() {
				// Whole group not stated.
				continue
			}
			if sum.LessThan(lower) || sum.GreaterThan(upper) {
				label := ctx.Tables.Papeis[papel]
				if label == "" {
					label = papel
				}
				findings = append(findings, actFinding(act, ctx,
					types.CategoriaNegocio, pctField,
					fmt.Sprintf("Soma das participações do grupo %s é %s%%; esperado entre 99%% e 100%%",
						label, sum.String())))
			}
		}
		return findings
	}
}
