// =============================================================================
// Cartorio Audit - DOI Lot Loader
// =============================================================================
//
// Loads a tax-declaration lot (DOI): a JSON array of flat records. Records
// become RawNodes with the 1-based array index standing in for the source
// line, since the record format has no meaningful line numbers. Field
// order is read off the token stream so the nodes keep the declaration's
// own field ordering.
//
// =============================================================================

package extrato

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gmcunha/cartorio-audit/internal/types"
)

// ErrNoRecords is returned when the lot parses but the array is empty.
var ErrNoRecords = errors.New("no records found in lot")

// ErrNotALot is returned when the input is not a JSON array at all.
var ErrNotALot = errors.New("input is not a record array")

// LoadDOI parses a DOI lot into a Document. The returned document has no
// XML tags; serialization of DOI lots goes back through encoding/json.
func LoadDOI(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse lot: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrNotALot
	}

	doc := &Document{}
	for dec.More() {
		node, err := decodeRecord(dec, len(doc.Nodes)+1)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	if len(doc.Nodes) == 0 {
		return nil, ErrNoRecords
	}
	return doc, nil
}

// decodeRecord reads one flat JSON object off the decoder. Nested values
// are rejected: the lot format is flat by definition.
func decodeRecord(dec *json.Decoder, index int) (*types.RawNode, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse lot record %d: %w", index, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("lot record %d is not an object", index)
	}

	node := &types.RawNode{Line: index, Fields: make(map[string]string)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse lot record %d: %w", index, err)
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse lot record %d: %w", index, err)
		}
		value, err := scalarToString(valTok)
		if err != nil {
			return nil, fmt.Errorf("lot record %d, field %q: %w", index, key, err)
		}
		node.Set(key, value)
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to parse lot record %d: %w", index, err)
	}
	return node, nil
}

func scalarToString(tok json.Token) (string, error) {
	switch v := tok.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	default:
		return "", errors.New("nested values are not allowed in lot records")
	}
}

// SerializeDOI regenerates the lot as a JSON array, keeping each record's
// field order.
func SerializeDOI(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, n := range doc.Nodes {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  {")
		for j, name := range n.FieldOrder {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(n.Fields[name])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteString("\n]\n")
	return buf.Bytes(), nil
}
