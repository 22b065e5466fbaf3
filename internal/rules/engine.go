// =============================================================================
// Cartorio Audit - Rule Validation Engine
// =============================================================================
//
// Evaluates LogicalActs against a per-domain rule table, producing the
// ordered Finding list. Rules are pure functions; findings are collected,
// never thrown. The engine itself is domain-agnostic: each filing domain
// contributes one table of act-level rules and one of party-level rules
// (see notas.go, procuracao.go, imoveis.go, doi.go).
//
// VALIDATION STRATEGY:
//   1. Act-level rules run once per LogicalAct, in table order
//   2. Party-level rules run for every party of the act, in slot order
//   3. Findings accumulate in evaluation order
//
// The only fatal failure is structural: the document did not parse, or it
// contains zero top-level act elements. That is reported as a single
// synthetic root Finding with success=false and no further validation.
//
// =============================================================================

package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// Common field names shared by the extract domains.
const (
	fieldTipoAto  = "tipoAto"
	fieldNatureza = "natureza"
)

// Context carries the read-only configuration a rule may consult.
type Context struct {
	Domain *config.Domain
	Tables config.DomainTables

	// Now anchors the future-date checks. Injected for testability.
	Now time.Time
}

// ActRule evaluates one LogicalAct.
type ActRule func(act *types.LogicalAct, ctx *Context) []types.Finding

// PartyRule evaluates one party within its act. slot is the 0-based
// position of the party.
type PartyRule func(slot int, p *types.Party, act *types.LogicalAct, ctx *Context) []types.Finding

// Engine is a configured validator for one filing domain.
type Engine struct {
	ctx        Context
	actRules   []ActRule
	partyRules []PartyRule
}

// NewEngine builds the engine for a domain, wiring its rule table.
func NewEngine(domainName string, tables *config.Tables) (*Engine, error) {
	domain, err := tables.Domain(domainName)
	if err != nil {
		return nil, err
	}

	e := &Engine{ctx: Context{
		Domain: &domain,
		Tables: tables.TablesFor(domainName),
		Now:    time.Now(),
	}}

	switch domainName {
	case config.DomainNotas:
		e.actRules, e.partyRules = notasRules()
	case config.DomainProcuracao:
		e.actRules, e.partyRules = procuracaoRules()
	case config.DomainImoveis:
		e.actRules, e.partyRules = imoveisRules()
	case config.DomainDOI:
		e.actRules, e.partyRules = doiRules()
	default:
		return nil, fmt.Errorf("no rule table for domain %q", domainName)
	}

	return e, nil
}

// WithNow overrides the engine's clock. Used by the date-coherence tests.
func (e *Engine) WithNow(now time.Time) *Engine {
	e.ctx.Now = now
	return e
}

// Validate runs the rule tables over every act and accumulates findings.
func (e *Engine) Validate(acts []*types.LogicalAct) types.ValidationResult {
	var findings []types.Finding

	for _, act := range acts {
		for _, rule := range e.actRules {
			findings = append(findings, rule(act, &e.ctx)...)
		}
		for slot := range act.Parties {
			for _, rule := range e.partyRules {
				findings = append(findings, rule(slot, &act.Parties[slot], act, &e.ctx)...)
			}
		}
	}

	return types.ValidationResult{Success: true, Findings: findings}
}

// RootFailure builds the single synthetic result for a structural failure
// (unparseable input or zero act elements).
func RootFailure(message string) types.ValidationResult {
	return types.ValidationResult{
		Success: false,
		Findings: []types.Finding{{
			Line:     0,
			Location: "documento",
			Message:  message,
			Category: types.CategoriaSchema,
		}},
	}
}

// =============================================================================
// FINDING CONSTRUCTION HELPERS
// =============================================================================

// actFinding builds a Finding anchored at the act's first line.
func actFinding(act *types.LogicalAct, ctx *Context, category types.FindingCategory, field, message string) types.Finding {
	return types.Finding{
		Line:         act.Line,
		Location:     act.Label,
		ActTypeLabel: ctx.Tables.LabelTipoAto(act.HeaderField(fieldTipoAto)),
		Message:      message,
		Category:     category,
		Field:        field,
	}
}

// partyFinding builds a Finding anchored at the party's originating line.
func partyFinding(p *types.Party, act *types.LogicalAct, ctx *Context, category types.FindingCategory, field, message string) types.Finding {
	return types.Finding{
		Line:         p.Line,
		Location:     act.Label,
		PartyName:    p.Nome,
		ActTypeLabel: ctx.Tables.LabelTipoAto(act.HeaderField(fieldTipoAto)),
		Message:      message,
		Category:     category,
		Field:        field,
	}
}

// optionsFrom turns a code->label dictionary into a stable, id-ordered
// option list for guided correction.
func optionsFrom(dict map[string]string) []types.Option {
	opts := make([]types.Option, 0, len(dict))
	for id, label := range dict {
		opts = append(opts, types.Option{ID: id, Label: label})
	}
	sort.Slice(opts, func(i, j int) bool { return opts[i].ID < opts[j].ID })
	return opts
}

// optionsFor restricts a dictionary to the given codes, keeping code order.
func optionsFor(dict map[string]string, codes []string) []types.Option {
	opts := make([]types.Option, 0, len(codes))
	for _, id := range codes {
		label, ok := dict[id]
		if !ok {
			label = id
		}
		opts = append(opts, types.Option{ID: id, Label: label})
	}
	return opts
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
