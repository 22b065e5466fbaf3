// =============================================================================
// Cartorio Audit - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - extrato (loader / correction replay)
//   - atos (grouping)
//   - rules (validation)
//   - guia (ledger parsers)
//   - reconcile (ledger comparison)
//
// =============================================================================

package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FILING TYPES
// =============================================================================

// RawNode is one flat record extracted from one element of the source
// document. It is immutable once loaded; the correction replay works on
// deep copies.
type RawNode struct {
	// Line is the 1-based source line the element started on. For the DOI
	// lot format (a JSON array) this is the 1-based record index.
	Line int

	// Fields maps field names to their text content.
	Fields map[string]string

	// FieldOrder records the first-seen order of field names, so the
	// canonical serializer reproduces the element deterministically.
	FieldOrder []string
}

// Get returns the value of a field, or "" when absent.
func (n *RawNode) Get(name string) string {
	return n.Fields[name]
}

// Has reports whether the field exists on the node, even if empty.
func (n *RawNode) Has(name string) bool {
	_, ok := n.Fields[name]
	return ok
}

// Set overwrites a field value, creating the field when it does not exist.
// New fields are appended to the field order.
func (n *RawNode) Set(name, value string) {
	if _, ok := n.Fields[name]; !ok {
		n.FieldOrder = append(n.FieldOrder, name)
	}
	n.Fields[name] = value
}

// Clone returns a deep copy of the node.
func (n *RawNode) Clone() *RawNode {
	fields := make(map[string]string, len(n.Fields))
	for k, v := range n.Fields {
		fields[k] = v
	}
	order := make([]string, len(n.FieldOrder))
	copy(order, n.FieldOrder)
	return &RawNode{Line: n.Line, Fields: fields, FieldOrder: order}
}

// LogicalAct is one notarial act reconstructed from every RawNode sharing
// the same grouping key (e.g. a livro/folha pair).
type LogicalAct struct {
	// Key is the concatenation of the domain's grouping-key fields.
	Key string

	// Label is the human-readable group locator, e.g. "Livro 101 / Folha 25".
	Label string

	// Line is the source line of the first RawNode observed for the key.
	Line int

	// Header holds the act-level fields, copied from the FIRST RawNode
	// observed for the key. Later nodes never back-fill header fields,
	// even when the first node left them empty.
	Header map[string]string

	// Parties are the participants contributed by every node of the group,
	// in source order.
	Parties []Party
}

// HeaderField returns an act-level field value, or "" when absent.
func (a *LogicalAct) HeaderField(name string) string {
	return a.Header[name]
}

// Party is a role-bearing participant within an act.
type Party struct {
	// Line is the source line of the RawNode that contributed this party.
	Line int

	// Nome is the party name (the party-identity field of the domain).
	Nome string

	// TipoDocumento is the declared document type code (e.g. CPF, CNPJ, OAB).
	TipoDocumento string

	// Documento is the document number as filed.
	Documento string

	// Papel is the declared role/qualification code.
	Papel string

	// Campos carries the remaining party-scoped fields of the originating
	// node (birth date, OAB section, participation percentage, flags...).
	Campos map[string]string
}

// Campo returns an auxiliary party field value, or "" when absent.
func (p *Party) Campo(name string) string {
	return p.Campos[name]
}

// =============================================================================
// FINDINGS AND CORRECTIONS
// =============================================================================

// FindingCategory is the closed set of validation finding categories.
type FindingCategory string

const (
	// CategoriaObrigatoriedade flags a required field that is missing.
	CategoriaObrigatoriedade FindingCategory = "Obrigatoriedade"

	// CategoriaMatematica flags a check-digit failure.
	CategoriaMatematica FindingCategory = "Validação Matemática"

	// CategoriaDominio flags a value outside its allowed set.
	CategoriaDominio FindingCategory = "Domínio"

	// CategoriaNegocio flags cardinality, participation or date-order
	// violations.
	CategoriaNegocio FindingCategory = "Regra de Negócio"

	// CategoriaFormato flags conditional formatting violations.
	CategoriaFormato FindingCategory = "Formato"

	// CategoriaSchema flags structural validation failures (DOI lot only).
	CategoriaSchema FindingCategory = "Schema"
)

// Option is one guided-correction choice offered alongside a Finding.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"rotulo"`
}

// Finding is one accumulated validation result. Findings are collected,
// never thrown; the caller decides what to surface.
type Finding struct {
	// Line is the source line the finding points at.
	Line int `json:"linha"`

	// Location is the human-readable group label of the act.
	Location string `json:"localizacao"`

	// PartyName names the offending party, when the rule is party-scoped.
	PartyName string `json:"nomeParte,omitempty"`

	// ActTypeLabel is the resolved label of the act type code.
	ActTypeLabel string `json:"tipoAto,omitempty"`

	// Message is the localized finding message.
	Message string `json:"mensagem"`

	// Category is one of the closed finding categories.
	Category FindingCategory `json:"categoria"`

	// Field is the field the finding refers to, used to pre-fill a
	// correction instruction.
	Field string `json:"campo,omitempty"`

	// Options drives guided correction for coded enumerations. Absence
	// means a free-text correction is expected.
	Options []Option `json:"opcoes,omitempty"`
}

// Correction is one externally produced correction instruction, built from
// a Finding plus a user-supplied value.
type Correction struct {
	Line     int    `json:"linha"`
	Location string `json:"localizacao,omitempty"`
	Field    string `json:"campo"`
	NewValue string `json:"novoValor"`
}

// ValidationResult is the outcome of validating one filing.
type ValidationResult struct {
	// Success is false only when the input could not be parsed as the
	// expected structural format or contained zero top-level elements.
	Success bool `json:"sucesso"`

	// Findings are the accumulated rule violations, in evaluation order.
	Findings []Finding `json:"achados"`
}

// =============================================================================
// LEDGER TYPES
// =============================================================================

// FundBreakdown is the statutory split of an emolument figure into named
// destination funds.
type FundBreakdown struct {
	// Detail maps fund names to their already-rounded amounts.
	Detail map[string]decimal.Decimal `json:"detalhe"`

	// Total is the sum of the rounded amounts (not a re-rounded raw sum).
	Total decimal.Decimal `json:"total"`
}

// Record is one billing act occurrence on a ledger.
type Record struct {
	// Pedido is the order/batch identifier keying the record.
	Pedido string `json:"pedido"`

	// Codigo is the 4-digit act-type code.
	Codigo string `json:"codigo"`

	// Descricao is the act description, possibly accumulated over
	// multiple source lines.
	Descricao string `json:"descricao"`

	// Situacao is the sticky selo situation in effect when the record was
	// read (Desconhecido, Isento or Utilizado).
	Situacao string `json:"situacao"`

	Quantidade     int             `json:"quantidade"`
	Emolumento     decimal.Decimal `json:"emolumento"`
	TaxaJudiciaria decimal.Decimal `json:"taxaJudiciaria"`
	ISS            decimal.Decimal `json:"iss"`
	Total          decimal.Decimal `json:"total"`

	// Fundos is the fund breakdown derived from the emolument figure.
	Fundos FundBreakdown `json:"fundos"`
}

// Summary aggregates totals over a Record set.
type Summary struct {
	Quantidade     int             `json:"quantidade"`
	Emolumentos    decimal.Decimal `json:"emolumentos"`
	TaxaJudiciaria decimal.Decimal `json:"taxaJudiciaria"`
	ISS            decimal.Decimal `json:"iss"`

	// ValorGuia is the guide total located on the document footer.
	ValorGuia decimal.Decimal `json:"valorGuia"`

	// Fundos is the breakdown over the summed emolument figure.
	Fundos FundBreakdown `json:"fundos"`

	// Competencia is the reference month, "MM/YYYY".
	Competencia string `json:"competencia"`

	// Decendio is the 1-based decêndio bucket of the reference date
	// (1: days 1-10, 2: days 11-20, 3: day 21 onwards). Zero when unknown.
	Decendio int `json:"decendio,omitempty"`
}

// =============================================================================
// RECONCILIATION TYPES
// =============================================================================

// ComparisonStatus classifies one compared field or record.
type ComparisonStatus string

const (
	StatusOK         ComparisonStatus = "OK"
	StatusDivergente ComparisonStatus = "DIVERGENTE"

	// StatusAusenteSistema marks a record present only in the audited
	// file ("B"), absent from the system ledger ("A").
	StatusAusenteSistema ComparisonStatus = "AUSENTE_SISTEMA"

	// StatusAusenteArquivo marks a record present only in the system
	// ledger ("A"), absent from the audited file ("B").
	StatusAusenteArquivo ComparisonStatus = "AUSENTE_ARQUIVO"
)

// ComparisonField is one pairwise field comparison.
type ComparisonField struct {
	Label  string           `json:"rotulo"`
	Status ComparisonStatus `json:"status"`

	// ValueA is the system-side value, ValueB the file-side value,
	// both already formatted for display.
	ValueA string `json:"valorSistema"`
	ValueB string `json:"valorArquivo"`

	// Difference is only populated for monetary fields; nil otherwise.
	Difference *string `json:"diferenca"`
}

// RecordComparison is the comparison of the two records sharing one key.
type RecordComparison struct {
	Key    string            `json:"chave"`
	Status ComparisonStatus  `json:"status"`
	Fields []ComparisonField `json:"campos"`
}

// Statistics holds per-classification counters for an audit report.
type Statistics struct {
	TotalRegistros  int `json:"totalRegistros"`
	Conferem        int `json:"conferem"`
	Divergentes     int `json:"divergentes"`
	AusentesSistema int `json:"ausentesSistema"`
	AusentesArquivo int `json:"ausentesArquivo"`
}

// AuditReport is the full reconciliation output.
type AuditReport struct {
	SummaryComparison []ComparisonField  `json:"resumo"`
	RecordComparisons []RecordComparison `json:"registros"`
	Statistics        Statistics         `json:"estatisticas"`
	Timestamp         time.Time          `json:"geradoEm"`
}
