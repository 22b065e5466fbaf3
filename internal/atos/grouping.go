// =============================================================================
// Cartorio Audit - Act Grouping Engine
// =============================================================================
//
// Folds the flat RawNode list into LogicalActs keyed by the domain's
// composite grouping key (livro/folha pair, or the four-field variant with
// complements). The fold is pure: one pass over the nodes, producing an
// insertion-ordered act list, no shared state.
//
// Header fields are materialized from the FIRST node observed for a key
// and are never back-filled from later nodes, even when the first node
// left them empty. Every node carrying a non-empty party-identity field
// contributes one Party. There are no error conditions: malformed nodes
// simply contribute absent or empty fields.
//
// =============================================================================

package atos

import (
	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// Group folds the node list into insertion-ordered LogicalActs.
func Group(nodes []*types.RawNode, domain *config.Domain) []*types.LogicalAct {
	byKey := make(map[string]*types.LogicalAct)
	var order []*types.LogicalAct

	for _, n := range nodes {
		key := domain.KeyOf(n)

		act, ok := byKey[key]
		if !ok {
			act = &types.LogicalAct{
				Key:    key,
				Label:  domain.LabelOf(n),
				Line:   n.Line,
				Header: headerFrom(n, domain),
			}
			byKey[key] = act
			order = append(order, act)
		}

		if name := n.Get(domain.PartyNameField); name != "" {
			act.Parties = append(act.Parties, partyFrom(n, name, domain))
		}
	}

	return order
}

// headerFrom copies the act-level fields off the first node of a group.
// Only fields present on the node are copied, so a later correction can
// still create the missing ones.
func headerFrom(n *types.RawNode, domain *config.Domain) map[string]string {
	header := make(map[string]string, len(domain.HeaderFields))
	for _, f := range domain.HeaderFields {
		if n.Has(f) {
			header[f] = n.Get(f)
		}
	}
	return header
}

// partyFrom builds the Party contributed by one node.
func partyFrom(n *types.RawNode, name string, domain *config.Domain) types.Party {
	campos := make(map[string]string, len(domain.PartyAuxFields))
	for _, f := range domain.PartyAuxFields {
		if n.Has(f) {
			campos[f] = n.Get(f)
		}
	}
	return types.Party{
		Line:          n.Line,
		Nome:          name,
		TipoDocumento: n.Get(domain.PartyDocTypeField),
		Documento:     n.Get(domain.PartyDocField),
		Papel:         n.Get(domain.PartyRoleField),
		Campos:        campos,
	}
}
