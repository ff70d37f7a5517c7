package ir

// Type is a sealed interface describing the shape of a field's type.
// Only the ten variants in this file implement it. The renderer
// pattern-matches the set exhaustively to decide ownership, iteration and
// recursion in generated code, so no variant may be added without updating
// every consumer.
//
// Nesting is strictly tree-shaped: each wrapper owns its child exclusively.
// No sharing, no cycles.
type Type interface {
	typeVariant() // Sealed - only these types implement it
}

// Item references another node defined in this same IR. The name must
// match some Node identifier in the enclosing Definitions; that referential
// invariant is checked by the compiler package, not here.
type Item string

func (Item) typeVariant() {}

// Std is a standard-library type identified by name, opaque to the IR.
type Std string

func (Std) typeVariant() {}

// Ext is a type external to both this IR and the standard library.
type Ext string

func (Ext) typeVariant() {}

// Token is a single lexical token type, named by its canonical identifier
// from Definitions.Tokens.
type Token string

func (Token) typeVariant() {}

// Group is a token delimiter marker, e.g. a bracketed region.
type Group string

func (Group) typeVariant() {}

// Option wraps a type that may be absent.
type Option struct {
	Elem Type
}

func (Option) typeVariant() {}

// Box wraps a type stored behind an owning indirection.
type Box struct {
	Elem Type
}

func (Box) typeVariant() {}

// Vec wraps the element type of a growable list.
type Vec struct {
	Elem Type
}

func (Vec) typeVariant() {}

// Tuple is a fixed-arity heterogeneous grouping.
type Tuple []Type

func (Tuple) typeVariant() {}

// Punctuated is a delimited list: elements of one type interleaved with a
// separator token.
type Punctuated struct {
	element Type
	punct   string
}

func (Punctuated) typeVariant() {}

// NewPunctuated creates a Punctuated list type, taking ownership of the
// element type.
func NewPunctuated(element Type, punct string) Punctuated {
	return Punctuated{element: element, punct: punct}
}

// Element returns the element type of the list.
func (p Punctuated) Element() Type {
	return p.element
}

// Punct returns the separator token text.
func (p Punctuated) Punct() string {
	return p.punct
}
