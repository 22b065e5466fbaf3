// =============================================================================
// Cartorio Audit - Correction Replay Engine
// =============================================================================
//
// Applies a batch of correction instructions to a loaded document and
// regenerates the document text. The replay is a pure function over the
// node list: the input document is never mutated, and replaying a batch
// against its own output is a no-op.
//
// PROPAGATION:
//   A correction to a header-class field is written to EVERY node sharing
//   the target's grouping key, not only the node that produced the
//   finding. Party-scoped fields are corrected only on the node whose
//   source line equals the instruction's line.
//
// Instructions whose target cannot be located are silently skipped; the
// stats expose the skip count so callers can re-validate and detect it.
//
// =============================================================================

package extrato

import (
	"github.com/gmcunha/cartorio-audit/internal/config"
	"github.com/gmcunha/cartorio-audit/internal/types"
)

// ApplyStats reports what a replay did.
type ApplyStats struct {
	// Applied counts instructions that wrote at least one node.
	Applied int

	// Skipped counts instructions whose target could not be located.
	Skipped int

	// NodesWritten counts individual node writes, including propagation.
	NodesWritten int
}

// Apply replays a correction batch against the document and returns the
// corrected copy. The original document is left untouched.
func Apply(doc *Document, domain *config.Domain, corrections []types.Correction) (*Document, ApplyStats) {
	out := doc.Clone()
	var stats ApplyStats

	for _, c := range corrections {
		key, ok := resolveKey(out, domain, c)
		if !ok {
			stats.Skipped++
			continue
		}

		written := 0
		if domain.IsHeaderField(c.Field) {
			// Header-class: propagate to every node of the group.
			for _, n := range out.Nodes {
				if domain.KeyOf(n) == key {
					n.Set(c.Field, c.NewValue)
					written++
				}
			}
		} else {
			// Party-scoped: only the exact originating line, and only
			// within the resolved group.
			for _, n := range out.Nodes {
				if n.Line == c.Line && domain.KeyOf(n) == key {
					n.Set(c.Field, c.NewValue)
					written++
					break
				}
			}
		}

		if written == 0 {
			stats.Skipped++
			continue
		}
		stats.Applied++
		stats.NodesWritten += written
	}

	return out, stats
}

// resolveKey locates the grouping key an instruction targets: first by the
// node at the instruction's line, then by matching the instruction's
// location against group labels.
func resolveKey(doc *Document, domain *config.Domain, c types.Correction) (string, bool) {
	for _, n := range doc.Nodes {
		if n.Line == c.Line {
			return domain.KeyOf(n), true
		}
	}
	if c.Location != "" {
		for _, n := range doc.Nodes {
			if domain.LabelOf(n) == c.Location {
				return domain.KeyOf(n), true
			}
		}
	}
	return "", false
}
