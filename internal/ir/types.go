package ir

// Definitions is the root of one generation run: every declared node plus
// the mapping from raw token spelling (e.g. "=>") to its canonical token
// type name (e.g. "FatArrow"). It owns all Node values exclusively and is
// discarded when the run ends.
type Definitions struct {
	Types  []Node
	Tokens map[string]string
}

// Node is a sealed union over the two declaration kinds. Only *Struct and
// *Enum implement it. Every node carries a unique identifier and the
// feature set under which it exists; uniqueness across a Definitions value
// must hold by construction and is verified by the compiler package.
type Node interface {
	// Ident returns the node's identifier.
	Ident() string
	// Features returns the node's feature requirement. The returned
	// pointer lets the loader consolidate duplicate declarations via
	// Features.Join; after loading the IR is treated as read-only.
	Features() *Features

	node() // Sealed - only *Struct and *Enum implement it
}

// Struct is a declared struct node: named fields in source order, plus a
// flag recording whether every field is publicly visible in the emitted
// code.
type Struct struct {
	ident        string
	features     Features
	fields       []Field
	allFieldsPub bool
}

// NewStruct constructs a Struct. Construction is all-at-once; there is no
// partial or incremental form.
func NewStruct(ident string, features Features, fields []Field, allFieldsPub bool) *Struct {
	return &Struct{
		ident:        ident,
		features:     features,
		fields:       fields,
		allFieldsPub: allFieldsPub,
	}
}

func (s *Struct) Ident() string { return s.ident }

func (s *Struct) Features() *Features { return &s.features }

// Fields returns the field sequence in declaration order. Callers must not
// modify the returned slice.
func (s *Struct) Fields() []Field { return s.fields }

// AllFieldsPub reports whether every field of the struct is publicly
// accessible.
func (s *Struct) AllFieldsPub() bool { return s.allFieldsPub }

func (*Struct) node() {}

// Enum is a declared enum node: an ordered sequence of variants.
type Enum struct {
	ident    string
	features Features
	variants []Variant
}

// NewEnum constructs an Enum.
func NewEnum(ident string, features Features, variants []Variant) *Enum {
	return &Enum{
		ident:    ident,
		features: features,
		variants: variants,
	}
}

func (e *Enum) Ident() string { return e.ident }

func (e *Enum) Features() *Features { return &e.features }

// Variants returns the variant sequence in declaration order. Callers must
// not modify the returned slice.
func (e *Enum) Variants() []Variant { return e.variants }

func (*Enum) node() {}

// Variant is one case of an Enum: an identifier unique within the enum and
// the variant's payload types in order. An empty payload is a unit variant.
type Variant struct {
	ident  string
	fields []Type
}

// NewVariant constructs a Variant, taking ownership of the payload types.
func NewVariant(ident string, fields []Type) Variant {
	return Variant{ident: ident, fields: fields}
}

func (v Variant) Ident() string { return v.ident }

// Fields returns the payload types in order. Callers must not modify the
// returned slice.
func (v Variant) Fields() []Type { return v.fields }

// Field is one named field of a Struct.
type Field struct {
	ident string
	ty    Type
}

// NewField constructs a Field, taking ownership of the type.
func NewField(ident string, ty Type) Field {
	return Field{ident: ident, ty: ty}
}

func (f Field) Ident() string { return f.ident }

func (f Field) Type() Type { return f.ty }
