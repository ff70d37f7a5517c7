package ir

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Serialization contract:
//   - Node is internally tagged: a "node" discriminator of "struct" or
//     "enum" alongside the node's own keys.
//   - Type is externally tagged: a single-key object whose key is the
//     lower-cased variant name ("item", "option", "punctuated", ...).
//   - Field.ty serializes under the key "type" to match the external
//     schema's naming.
//   - Features serializes as {"any": [...]}, never null.
// The renderer and debugging tooling both depend on these shapes.

// MarshalJSON implements json.Marshaler for Features. The empty value
// serializes as {"any":[]}, not null.
func (f Features) MarshalJSON() ([]byte, error) {
	flags := f.any
	if flags == nil {
		flags = []string{}
	}
	return json.Marshal(struct {
		Any []string `json:"any"`
	}{flags})
}

// UnmarshalJSON implements json.Unmarshaler for Features.
func (f *Features) UnmarshalJSON(data []byte) error {
	var raw struct {
		Any []string `json:"any"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	// Normalize: the empty requirement is nil internally so values compare
	// equal regardless of whether they were constructed or decoded.
	if len(raw.Any) == 0 {
		f.any = nil
	} else {
		f.any = raw.Any
	}
	return nil
}

// MarshalType serializes a Type as its externally tagged form.
// Uses type-switch dispatch to handle all variants; an unknown dynamic
// type is an error so a future variant cannot serialize silently wrong.
func MarshalType(t Type) ([]byte, error) {
	switch v := t.(type) {
	case Item:
		return marshalTaggedString("item", string(v))
	case Std:
		return marshalTaggedString("std", string(v))
	case Ext:
		return marshalTaggedString("ext", string(v))
	case Token:
		return marshalTaggedString("token", string(v))
	case Group:
		return marshalTaggedString("group", string(v))
	case Option:
		return marshalTaggedChild("option", v.Elem)
	case Box:
		return marshalTaggedChild("box", v.Elem)
	case Vec:
		return marshalTaggedChild("vec", v.Elem)
	case Tuple:
		elems, err := marshalTypeSlice(v)
		if err != nil {
			return nil, err
		}
		return tagged("tuple", elems), nil
	case Punctuated:
		element, err := MarshalType(v.element)
		if err != nil {
			return nil, fmt.Errorf("punctuated element: %w", err)
		}
		inner, err := json.Marshal(struct {
			Element json.RawMessage `json:"element"`
			Punct   string          `json:"punct"`
		}{element, v.punct})
		if err != nil {
			return nil, err
		}
		return tagged("punctuated", inner), nil
	default:
		return nil, fmt.Errorf("ir: unknown Type variant: %T", t)
	}
}

// UnmarshalType decodes the externally tagged form back into a Type.
func UnmarshalType(data []byte) (Type, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) != 1 {
		return nil, fmt.Errorf("ir: type object must have exactly one key, got %d", len(raw))
	}

	var tag string
	var body json.RawMessage
	for k, v := range raw {
		tag, body = k, v
	}

	switch tag {
	case "item", "std", "ext", "token", "group":
		var name string
		if err := json.Unmarshal(body, &name); err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
		switch tag {
		case "item":
			return Item(name), nil
		case "std":
			return Std(name), nil
		case "ext":
			return Ext(name), nil
		case "token":
			return Token(name), nil
		default:
			return Group(name), nil
		}
	case "option", "box", "vec":
		elem, err := UnmarshalType(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tag, err)
		}
		switch tag {
		case "option":
			return Option{Elem: elem}, nil
		case "box":
			return Box{Elem: elem}, nil
		default:
			return Vec{Elem: elem}, nil
		}
	case "tuple":
		var elems []json.RawMessage
		if err := json.Unmarshal(body, &elems); err != nil {
			return nil, fmt.Errorf("tuple: %w", err)
		}
		tuple := make(Tuple, len(elems))
		for i, e := range elems {
			t, err := UnmarshalType(e)
			if err != nil {
				return nil, fmt.Errorf("tuple[%d]: %w", i, err)
			}
			tuple[i] = t
		}
		return tuple, nil
	case "punctuated":
		var p struct {
			Element json.RawMessage `json:"element"`
			Punct   string          `json:"punct"`
		}
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("punctuated: %w", err)
		}
		element, err := UnmarshalType(p.Element)
		if err != nil {
			return nil, fmt.Errorf("punctuated element: %w", err)
		}
		return NewPunctuated(element, p.Punct), nil
	default:
		return nil, fmt.Errorf("ir: unknown type discriminator %q", tag)
	}
}

// MarshalJSON implements json.Marshaler for Field. The type serializes
// under the key "type".
func (f Field) MarshalJSON() ([]byte, error) {
	ty, err := MarshalType(f.ty)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.ident, err)
	}
	return json.Marshal(struct {
		Ident string          `json:"ident"`
		Type  json.RawMessage `json:"type"`
	}{f.ident, ty})
}

// UnmarshalJSON implements json.Unmarshaler for Field.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ident string          `json:"ident"`
		Type  json.RawMessage `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ty, err := UnmarshalType(raw.Type)
	if err != nil {
		return fmt.Errorf("field %q: %w", raw.Ident, err)
	}
	f.ident = raw.Ident
	f.ty = ty
	return nil
}

// MarshalJSON implements json.Marshaler for Variant.
func (v Variant) MarshalJSON() ([]byte, error) {
	fields, err := marshalTypeSlice(v.fields)
	if err != nil {
		return nil, fmt.Errorf("variant %q: %w", v.ident, err)
	}
	return json.Marshal(struct {
		Ident  string          `json:"ident"`
		Fields json.RawMessage `json:"fields"`
	}{v.ident, fields})
}

// UnmarshalJSON implements json.Unmarshaler for Variant.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var raw struct {
		Ident  string            `json:"ident"`
		Fields []json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var fields []Type
	if len(raw.Fields) > 0 {
		fields = make([]Type, len(raw.Fields))
		for i, msg := range raw.Fields {
			t, err := UnmarshalType(msg)
			if err != nil {
				return fmt.Errorf("variant %q field %d: %w", raw.Ident, i, err)
			}
			fields[i] = t
		}
	}
	v.ident = raw.Ident
	v.fields = fields
	return nil
}

// MarshalJSON implements json.Marshaler for Struct, adding the "struct"
// node discriminator.
func (s *Struct) MarshalJSON() ([]byte, error) {
	fields := s.fields
	if fields == nil {
		fields = []Field{}
	}
	return json.Marshal(struct {
		Node         string   `json:"node"`
		Ident        string   `json:"ident"`
		Features     Features `json:"features"`
		Fields       []Field  `json:"fields"`
		AllFieldsPub bool     `json:"all_fields_pub"`
	}{"struct", s.ident, s.features, fields, s.allFieldsPub})
}

// MarshalJSON implements json.Marshaler for Enum, adding the "enum" node
// discriminator.
func (e *Enum) MarshalJSON() ([]byte, error) {
	variants := e.variants
	if variants == nil {
		variants = []Variant{}
	}
	return json.Marshal(struct {
		Node     string    `json:"node"`
		Ident    string    `json:"ident"`
		Features Features  `json:"features"`
		Variants []Variant `json:"variants"`
	}{"enum", e.ident, e.features, variants})
}

// UnmarshalNode decodes a serialized node by sniffing its "node"
// discriminator and dispatching to the matching shape.
func UnmarshalNode(data []byte) (Node, error) {
	var probe struct {
		Node string `json:"node"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Node {
	case "struct":
		var raw struct {
			Ident        string   `json:"ident"`
			Features     Features `json:"features"`
			Fields       []Field  `json:"fields"`
			AllFieldsPub bool     `json:"all_fields_pub"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("struct node: %w", err)
		}
		return NewStruct(raw.Ident, raw.Features, raw.Fields, raw.AllFieldsPub), nil
	case "enum":
		var raw struct {
			Ident    string    `json:"ident"`
			Features Features  `json:"features"`
			Variants []Variant `json:"variants"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("enum node: %w", err)
		}
		return NewEnum(raw.Ident, raw.Features, raw.Variants), nil
	default:
		return nil, fmt.Errorf("ir: unknown node discriminator %q", probe.Node)
	}
}

// MarshalJSON implements json.Marshaler for Definitions. Token keys are
// emitted in sorted order (the map semantics are ordered-by-key).
func (d Definitions) MarshalJSON() ([]byte, error) {
	types := d.Types
	if types == nil {
		types = []Node{}
	}
	tokens := d.Tokens
	if tokens == nil {
		tokens = map[string]string{}
	}
	return json.Marshal(struct {
		Types  []Node            `json:"types"`
		Tokens map[string]string `json:"tokens"`
	}{types, tokens})
}

// UnmarshalJSON implements json.Unmarshaler for Definitions, dispatching
// each element of "types" through UnmarshalNode.
func (d *Definitions) UnmarshalJSON(data []byte) error {
	var raw struct {
		Types  []json.RawMessage `json:"types"`
		Tokens map[string]string `json:"tokens"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	types := make([]Node, len(raw.Types))
	for i, msg := range raw.Types {
		node, err := UnmarshalNode(msg)
		if err != nil {
			return fmt.Errorf("types[%d]: %w", i, err)
		}
		types[i] = node
	}
	d.Types = types
	d.Tokens = raw.Tokens
	return nil
}

// marshalTypeSlice marshals a sequence of types as a JSON array.
func marshalTypeSlice(types []Type) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, t := range types {
		if i > 0 {
			buf.WriteByte(',')
		}
		elem, err := MarshalType(t)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		buf.Write(elem)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalTaggedString emits {"<tag>":"<name>"}.
func marshalTaggedString(tag, name string) ([]byte, error) {
	encoded, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}
	return tagged(tag, encoded), nil
}

// marshalTaggedChild emits {"<tag>":<child>} for single-child wrappers.
func marshalTaggedChild(tag string, child Type) ([]byte, error) {
	inner, err := MarshalType(child)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return tagged(tag, inner), nil
}

// tagged wraps already-encoded JSON in a single-key object.
func tagged(tag string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteByte('"')
	buf.WriteString(tag)
	buf.WriteString(`":`)
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes()
}
