// Package testutil provides deterministic IR fixtures shared by package
// tests. Fixtures are rebuilt on every call so tests cannot leak mutations
// into each other.
package testutil

import (
	"github.com/defkit/astgen/internal/ir"
)

// SampleDefinitions returns a small, fully valid schema: a binary
// expression grammar with one enum, two structs, and a token table. It
// exercises every Type variant except Tuple and Vec; see NestedTypes for
// those.
func SampleDefinitions() *ir.Definitions {
	return &ir.Definitions{
		Types: []ir.Node{
			ir.NewStruct("ExprBinary", ir.NewFeatures(), []ir.Field{
				ir.NewField("left", ir.Box{Elem: ir.Item("Expr")}),
				ir.NewField("op", ir.Token("Plus")),
				ir.NewField("right", ir.Box{Elem: ir.Item("Expr")}),
			}, true),
			ir.NewStruct("ExprCall", ir.NewFeatures("full"), []ir.Field{
				ir.NewField("func", ir.Box{Elem: ir.Item("Expr")}),
				ir.NewField("paren", ir.Group("Paren")),
				ir.NewField("args", ir.NewPunctuated(ir.Item("Expr"), ",")),
				ir.NewField("output", ir.Option{Elem: ir.Ext("Span")}),
			}, true),
			ir.NewEnum("Expr", ir.NewFeatures(), []ir.Variant{
				ir.NewVariant("Binary", []ir.Type{ir.Item("ExprBinary")}),
				ir.NewVariant("Call", []ir.Type{ir.Item("ExprCall")}),
				ir.NewVariant("Lit", []ir.Type{ir.Std("String")}),
			}),
		},
		Tokens: map[string]string{
			"+": "Plus",
			"=": "Eq",
		},
	}
}

// NestedTypes returns deeply wrapped types keyed by a short label, for
// tests that walk or serialize the recursive Type shapes.
func NestedTypes() map[string]ir.Type {
	return map[string]ir.Type{
		"option_box_item": ir.Option{Elem: ir.Box{Elem: ir.Item("Expr")}},
		"vec_tuple":       ir.Vec{Elem: ir.Tuple{ir.Std("usize"), ir.Item("Expr")}},
		"punct_option":    ir.NewPunctuated(ir.Option{Elem: ir.Item("Expr")}, "|"),
	}
}
