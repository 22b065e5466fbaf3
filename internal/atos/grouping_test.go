package atos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

func node(line int, fields map[string]string) *types.RawNode {
	n := &types.RawNode{Line: line, Fields: make(map[string]string)}
	for k, v := range fields {
		n.Set(k, v)
	}
	return n
}

func domain(t *testing.T, name string) *config.Domain {
	t.Helper()
	d, err := config.DefaultTables().Domain(name)
	require.NoError(t, err)
	return &d
}

func TestGroupSharedKeyAccumulatesParties(t *testing.T) {
	d := domain(t, config.DomainNotas)
	nodes := []*types.RawNode{
		node(3, map[string]string{
			"livro": "101", "folha": "25", "tipoAto": "11",
			"nomeParte": "MARIA", "papelParte": "1",
		}),
		node(4, map[string]string{
			"livro": "101", "folha": "25",
			"nomeParte": "JOSE", "papelParte": "2",
		}),
	}

	acts := Group(nodes, d)

	require.Len(t, acts, 1)
	act := acts[0]
	assert.Equal(t, "Livro 101 / Folha 25", act.Label)
	assert.Equal(t, 3, act.Line)
	require.Len(t, act.Parties, 2)
	assert.Equal(t, "MARIA", act.Parties[0].Nome)
	assert.Equal(t, 4, act.Parties[1].Line)
}

func TestGroupHeaderComesFromFirstNodeOnly(t *testing.T) {
	d := domain(t, config.DomainNotas)
	nodes := []*types.RawNode{
		// First node of the group has an EMPTY tipoAto element.
		node(3, map[string]string{
			"livro": "101", "folha": "25", "tipoAto": "",
			"nomeParte": "MARIA",
		}),
		// The later node's value must not back-fill the header.
		node(4, map[string]string{
			"livro": "101", "folha": "25", "tipoAto": "11",
			"nomeParte": "JOSE",
		}),
	}

	acts := Group(nodes, d)

	require.Len(t, acts, 1)
	assert.Equal(t, "", acts[0].HeaderField("tipoAto"))
}

func TestGroupDistinctKeysStayOrdered(t *testing.T) {
	d := domain(t, config.DomainNotas)
	nodes := []*types.RawNode{
		node(3, map[string]string{"livro": "200", "folha": "10", "nomeParte": "A"}),
		node(4, map[string]string{"livro": "100", "folha": "01", "nomeParte": "B"}),
		node(5, map[string]string{"livro": "200", "folha": "10", "nomeParte": "C"}),
	}

	acts := Group(nodes, d)

	require.Len(t, acts, 2)
	// Insertion order, not key order.
	assert.Equal(t, "Livro 200 / Folha 10", acts[0].Label)
	assert.Equal(t, "Livro 100 / Folha 01", acts[1].Label)
	assert.Len(t, acts[0].Parties, 2)
	assert.Len(t, acts[1].Parties, 1)
}

func TestGroupFourFieldKey(t *testing.T) {
	d := domain(t, config.DomainProcuracao)
	nodes := []*types.RawNode{
		node(3, map[string]string{
			"livro": "10", "livroComplemento": "A",
			"folha": "55", "folhaComplemento": "V",
			"nomeParte": "MARIA",
		}),
		// Same livro/folha but different complement: a different act.
		node(4, map[string]string{
			"livro": "10", "livroComplemento": "B",
			"folha": "55", "folhaComplemento": "V",
			"nomeParte": "JOSE",
		}),
	}

	acts := Group(nodes, d)
	assert.Len(t, acts, 2)
}

func TestGroupNodeWithoutPartyNameContributesNoParty(t *testing.T) {
	d := domain(t, config.DomainNotas)
	nodes := []*types.RawNode{
		node(3, map[string]string{"livro": "101", "folha": "25", "tipoAto": "11"}),
	}

	acts := Group(nodes, d)

	require.Len(t, acts, 1)
	assert.Empty(t, acts[0].Parties)
}

func TestGroupMissingKeyFieldsCountAsEmpty(t *testing.T) {
	d := domain(t, config.DomainNotas)
	nodes := []*types.RawNode{
		node(3, map[string]string{"nomeParte": "A"}),
		node(4, map[string]string{"nomeParte": "B"}),
	}

	acts := Group(nodes, d)

	// Both nodes miss livro and folha, so they share the empty key.
	require.Len(t, acts, 1)
	assert.Equal(t, "Livro - / Folha -", acts[0].Label)
	assert.Len(t, acts[0].Parties, 2)
}
