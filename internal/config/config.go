// =============================================================================
// Cartorio Audit - Configuration Module
// =============================================================================
//
// This module holds the process-wide, read-only configuration: the filing
// domain definitions (tag names, grouping keys, header/party field sets)
// and the code->label tables that drive validation and guided correction.
//
// Everything here is loaded once at startup and never mutated afterwards,
// so unsynchronized concurrent reads from in-flight requests are safe.
//
// CONFIGURATION FILES:
//   1. Main config (config.yaml): directories, logging, archival
//   2. Table overrides (tabelas.yaml): optional replacements for the
//      embedded domain tables
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gmcunha/cartorio-audit/internal/types"
)

// =============================================================================
// MAIN CONFIGURATION
// =============================================================================

// MainConfig holds the global application configuration, loaded from the
// main config.yaml file. Zero values fall back to the defaults below.
type MainConfig struct {
	// InputDir is scanned by the CLI for filings to process.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives findings reports, corrected documents and audit
	// reports.
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives successfully processed inputs. Empty disables
	// archival.
	ArchiveDir string `yaml:"archive_dir"`

	// TablesFile optionally overrides the embedded domain tables.
	TablesFile string `yaml:"tables_file"`

	// LogLevel controls verbosity: "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// LoadMain reads the main configuration file. A missing file is not an
// error: the defaults are returned unchanged.
func LoadMain(path string) (*MainConfig, error) {
	cfg := &MainConfig{
		InputDir:  "./input",
		OutputDir: "./output",
		LogLevel:  "info",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// =============================================================================
// DOMAIN DEFINITIONS
// =============================================================================

// Domain describes one filing format: where its act elements live, which
// fields compose the grouping key, which fields are act-level (and thus
// propagate on correction) and which fields describe a party.
type Domain struct {
	// Name is the domain identifier used on the CLI and in reports.
	Name string `yaml:"nome"`

	// RootTag and ActTag locate the act elements in the source document.
	// Domains in the DOI lot format (a JSON array) leave both empty.
	RootTag string `yaml:"tagRaiz"`
	ActTag  string `yaml:"tagAto"`

	// JSONLot marks the domain as the record-array format instead of the
	// tagged hierarchical one.
	JSONLot bool `yaml:"loteJSON"`

	// KeyFields compose the grouping key, in order. Missing fields count
	// as empty strings.
	KeyFields []string `yaml:"camposChave"`

	// KeyLabels are the human-readable names of the key fields, used to
	// build group labels such as "Livro 101 / Folha 25".
	KeyLabels []string `yaml:"rotulosChave"`

	// HeaderFields are the act-level fields. A correction that targets a
	// header field propagates to every node sharing the grouping key.
	HeaderFields []string `yaml:"camposCabecalho"`

	// Party field wiring.
	PartyNameField    string   `yaml:"campoNomeParte"`
	PartyDocTypeField string   `yaml:"campoTipoDocumento"`
	PartyDocField     string   `yaml:"campoDocumento"`
	PartyRoleField    string   `yaml:"campoPapel"`
	PartyAuxFields    []string `yaml:"camposAuxiliaresParte"`
}

// IsHeaderField reports whether the field propagates across the group.
func (d *Domain) IsHeaderField(name string) bool {
	for _, f := range d.HeaderFields {
		if f == name {
			return true
		}
	}
	return false
}

// KeyOf concatenates the grouping-key fields of a node. Missing fields
// contribute empty strings, so two nodes missing the same fields still
// land in the same group.
func (d *Domain) KeyOf(n *types.RawNode) string {
	var b strings.Builder
	for _, f := range d.KeyFields {
		b.WriteString(n.Get(f))
		b.WriteByte('|')
	}
	return b.String()
}

// LabelOf builds the human-readable group label of a node, e.g.
// "Livro 101 / Folha 25". Empty key fields are rendered as "-".
func (d *Domain) LabelOf(n *types.RawNode) string {
	parts := make([]string, 0, len(d.KeyFields))
	for i, f := range d.KeyFields {
		v := n.Get(f)
		if v == "" {
			v = "-"
		}
		label := f
		if i < len(d.KeyLabels) {
			label = d.KeyLabels[i]
		}
		parts = append(parts, label+" "+v)
	}
	return strings.Join(parts, " / ")
}

// =============================================================================
// DOMAIN TABLES
// =============================================================================

// DomainTables holds the code->label dictionaries and rule parameters of
// one domain. All maps are read-only after load.
type DomainTables struct {
	// TipoAto maps act-type codes to labels.
	TipoAto map[string]string `yaml:"tipoAto"`

	// Naturezas maps nature codes to labels (coded enumeration used by
	// the conditional-requiredness rule).
	Naturezas map[string]string `yaml:"naturezas"`

	// Papeis maps role codes to labels.
	Papeis map[string]string `yaml:"papeis"`

	// PapeisPorTipo maps act-type codes to their allowed role codes.
	PapeisPorTipo map[string][]string `yaml:"papeisPorTipo"`

	// NaturezaObrigatoriaPara lists the act-type codes for which the
	// nature field is required.
	NaturezaObrigatoriaPara []string `yaml:"naturezaObrigatoriaPara"`

	// ReferenteObrigatorioPara lists the act-type codes (revocation,
	// renunciation, substitution) that require the prior-act referent
	// cluster.
	ReferenteObrigatorioPara []string `yaml:"referenteObrigatorioPara"`

	// MinPartes maps act-type codes to their minimum party count.
	MinPartes map[string]int `yaml:"minPartes"`

	// MinPartesDefault applies when the act type has no entry above.
	MinPartesDefault int `yaml:"minPartesDefault"`
}

// LabelTipoAto resolves an act-type code, falling back to the code itself.
func (t *DomainTables) LabelTipoAto(code string) string {
	if label, ok := t.TipoAto[code]; ok {
		return label
	}
	return code
}

// MinPartesFor returns the minimum party count for an act type.
func (t *DomainTables) MinPartesFor(code string) int {
	if n, ok := t.MinPartes[code]; ok {
		return n
	}
	return t.MinPartesDefault
}

// =============================================================================
// AGGREGATE TABLES
// =============================================================================

// Tables is the full read-only configuration consumed by the engines.
type Tables struct {
	Domains map[string]Domain       `yaml:"dominios"`
	Tabelas map[string]DomainTables `yaml:"tabelas"`

	// Fundos overrides the statutory fund percentage table. Keys are fund
	// names, values percentages; order comes from FundosOrdem.
	Fundos      map[string]float64 `yaml:"fundos"`
	FundosOrdem []string           `yaml:"fundosOrdem"`
}

// Domain returns a domain definition by name.
func (t *Tables) Domain(name string) (Domain, error) {
	d, ok := t.Domains[name]
	if !ok {
		return Domain{}, fmt.Errorf("unknown filing domain: %q", name)
	}
	return d, nil
}

// TablesFor returns the rule tables of a domain. Domains without tables
// get an empty set, which disables the coded rules.
func (t *Tables) TablesFor(name string) DomainTables {
	return t.Tabelas[name]
}

// LoadTables loads the domain tables, starting from the embedded defaults
// and applying the overrides file when present.
func LoadTables(path string) (*Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tables, nil
		}
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	if err := yaml.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("failed to parse tables file: %w", err)
	}

	return tables, nil
}
