package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcunha/cartorio-audit/internal/types"
)

func TestLoadMainMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadMain(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.InputDir)
	assert.Equal(t, "./output", cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMainReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"input_dir: /data/in\nlog_level: debug\n"), 0644))

	cfg, err := LoadMain(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, "./output", cfg.OutputDir)
}

func TestDomainKeyAndLabel(t *testing.T) {
	d, err := DefaultTables().Domain(DomainNotas)
	require.NoError(t, err)

	n := &types.RawNode{Fields: map[string]string{"livro": "101", "folha": "25"}}
	assert.Equal(t, "101|25|", d.KeyOf(n))
	assert.Equal(t, "Livro 101 / Folha 25", d.LabelOf(n))

	empty := &types.RawNode{Fields: map[string]string{}}
	assert.Equal(t, "||", d.KeyOf(empty))
	assert.Equal(t, "Livro - / Folha -", d.LabelOf(empty))
}

func TestDomainUnknown(t *testing.T) {
	_, err := DefaultTables().Domain("protesto")
	assert.Error(t, err)
}

func TestDomainTablesFallbacks(t *testing.T) {
	tables := DefaultTables().TablesFor(DomainNotas)

	assert.Equal(t, "Escritura de Compra e Venda", tables.LabelTipoAto("11"))
	// Unknown codes fall back to the code itself.
	assert.Equal(t, "99", tables.LabelTipoAto("99"))

	assert.Equal(t, 1, tables.MinPartesFor("14"))
	assert.Equal(t, 2, tables.MinPartesFor("11"))
}

func TestLoadTablesOverridesFunds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabelas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"fundos:\n  FUNDESP: 12.5\n"), 0644))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	assert.Equal(t, 12.5, tables.Fundos["FUNDESP"])
	// Embedded defaults survive for everything not overridden.
	assert.Contains(t, tables.Domains, DomainDOI)
	assert.Equal(t, 6.0, tables.Fundos["FUNCOMP"])
}

func TestLoadTablesMissingFileKeepsDefaults(t *testing.T) {
	tables, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Len(t, tables.Domains, 4)
}
