// =============================================================================
// Cartorio Audit - Canonical Serializer
// =============================================================================
//
// Regenerates the document text from a node list. The layout is canonical:
// XML declaration, root open tag, then each act element written whole on
// one line, fields in the node's first-seen order, escaped by hand.
//
// Each act is emitted at the source line recorded on its node, padding
// with blank lines as needed. This is load-bearing for the correction
// replay: line numbers never shift between a document and its reserialized
// form (field creation happens inside an existing line), so line-matched
// corrections keep pointing at the same act when a batch is replayed
// against its own output.
//
// =============================================================================

package extrato

import (
	"strings"

	"github.com/gmcunha/cartorio-audit/internal/types"
)

// Serialize renders the document in canonical form, keeping every node on
// its recorded source line.
func Serialize(doc *Document) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteByte('\n')
	b.WriteByte('<')
	b.WriteString(doc.RootTag)
	b.WriteByte('>')
	line := 2

	for _, n := range doc.Nodes {
		// Pad up to the node's line. Nodes at or before the current line
		// (single-line source documents) are appended in place.
		for line < n.Line {
			b.WriteByte('\n')
			line++
		}
		writeAct(&b, doc.ActTag, n)
	}

	b.WriteString("\n</")
	b.WriteString(doc.RootTag)
	b.WriteString(">\n")
	return []byte(b.String())
}

func writeAct(b *strings.Builder, actTag string, n *types.RawNode) {
	b.WriteByte('<')
	b.WriteString(actTag)
	b.WriteByte('>')
	for _, name := range n.FieldOrder {
		b.WriteByte('<')
		b.WriteString(name)
		b.WriteByte('>')
		b.WriteString(escapeXML(n.Fields[name]))
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
	}
	b.WriteString("</")
	b.WriteString(actTag)
	b.WriteByte('>')
}

// escapeXML escapes the five XML special characters.
func escapeXML(s string) string {
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
