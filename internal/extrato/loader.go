// =============================================================================
// Cartorio Audit - Structured Document Loader
// =============================================================================
//
// Parses a tagged hierarchical act extract into an ordered list of flat
// field maps ("raw nodes"), retaining the 1-based source line each act
// element started on. The node list is the single document representation
// shared by the grouping engine, the rule engines and the correction
// replay: a serializable list instead of a live DOM tree, so the replay
// can stay a pure apply-and-reserialize function.
//
// Only two structural failures exist: the input does not parse as XML at
// all, or it contains zero act elements. Everything else (missing fields,
// stray elements) degrades to absent/empty fields on the nodes.
//
// =============================================================================

package extrato

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gmcunha/cartorio-audit/internal/types"
)

// ErrNoActs is returned when the document parses but holds no act
// elements. Callers turn it into the single synthetic root Finding.
var ErrNoActs = errors.New("no act elements found in document")

// Document is the loaded, serializable form of a filing.
type Document struct {
	// RootTag and ActTag record the element names observed on load, so
	// the serializer can regenerate the same structure.
	RootTag string
	ActTag  string

	// Nodes are the flat act records in source order.
	Nodes []*types.RawNode
}

// Clone deep-copies the document. The replay engine works on clones so
// loaded documents stay immutable.
func (d *Document) Clone() *Document {
	nodes := make([]*types.RawNode, len(d.Nodes))
	for i, n := range d.Nodes {
		nodes[i] = n.Clone()
	}
	return &Document{RootTag: d.RootTag, ActTag: d.ActTag, Nodes: nodes}
}

// LoadXML parses an act extract. actTag selects the elements that become
// RawNodes; their immediate children become fields (text content only,
// first-seen order preserved).
func LoadXML(data []byte, actTag string) (*Document, error) {
	lines := newLineIndex(data)
	dec := xml.NewDecoder(bytes.NewReader(data))

	doc := &Document{ActTag: actTag}
	var (
		current   *types.RawNode
		fieldName string
		fieldText strings.Builder
		depth     int
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			switch {
			case depth == 1:
				doc.RootTag = t.Name.Local
			case t.Name.Local == actTag && current == nil:
				current = &types.RawNode{
					Line:   lines.lineAt(dec.InputOffset()),
					Fields: make(map[string]string),
				}
			case current != nil && fieldName == "":
				fieldName = t.Name.Local
				fieldText.Reset()
			}
		case xml.EndElement:
			depth--
			switch {
			case current != nil && fieldName == t.Name.Local:
				current.Set(fieldName, strings.TrimSpace(fieldText.String()))
				fieldName = ""
			case current != nil && t.Name.Local == actTag:
				doc.Nodes = append(doc.Nodes, current)
				current = nil
			}
		case xml.CharData:
			if fieldName != "" {
				fieldText.Write(t)
			}
		}
	}

	if len(doc.Nodes) == 0 {
		return nil, ErrNoActs
	}
	return doc, nil
}

// =============================================================================
// LINE INDEX
// =============================================================================

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	// newlines holds the byte offset of every '\n'.
	newlines []int64
}

func newLineIndex(data []byte) *lineIndex {
	idx := &lineIndex{}
	for i, b := range data {
		if b == '\n' {
			idx.newlines = append(idx.newlines, int64(i))
		}
	}
	return idx
}

// lineAt returns the 1-based line containing the byte offset.
func (l *lineIndex) lineAt(offset int64) int {
	return sort.Search(len(l.newlines), func(i int) bool {
		return l.newlines[i] >= offset
	}) + 1
}
