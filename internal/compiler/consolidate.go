package compiler

import (
	"fmt"

	"github.com/defkit/astgen/internal/ir"
)

// Consolidate collapses repeated declarations of the same identifier into
// one node. A schema may declare one logical type several times under
// progressively narrower feature gates; the surviving node is the first
// occurrence, with its feature requirement merged across all declarations
// via ir.Features.Join.
//
// Re-declaring one name as both a struct and an enum is reported as a
// coded error. Non-nested feature sets panic inside Join - that invariant
// is the merge contract's, not this function's.
func Consolidate(nodes []ir.Node) ([]ir.Node, []ValidationError) {
	var errs []ValidationError

	out := make([]ir.Node, 0, len(nodes))
	byIdent := make(map[string]ir.Node, len(nodes))

	for i, node := range nodes {
		first, ok := byIdent[node.Ident()]
		if !ok {
			byIdent[node.Ident()] = node
			out = append(out, node)
			continue
		}

		if !sameKind(first, node) {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("types[%d]", i),
				Message: fmt.Sprintf("%q is declared as both a struct and an enum", node.Ident()),
				Code:    ErrKindMismatch,
			})
			continue
		}

		first.Features().Join(node.Features())
	}

	return out, errs
}

func sameKind(a, b ir.Node) bool {
	switch a.(type) {
	case *ir.Struct:
		_, ok := b.(*ir.Struct)
		return ok
	case *ir.Enum:
		_, ok := b.(*ir.Enum)
		return ok
	default:
		return false
	}
}
