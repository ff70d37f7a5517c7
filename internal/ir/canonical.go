package ir

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf16"

	json "github.com/goccy/go-json"
	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces RFC 8785 canonical JSON for a Definitions
// value. This is the ONLY serialization that should be used for the
// content-addressed fingerprint.
//
// Key differences from MarshalJSON:
//  1. Object keys sorted by UTF-16 code units (not declaration order)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
func MarshalCanonical(d *Definitions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"tokens":`)
	if err := writeCanonicalTokens(&buf, d.Tokens); err != nil {
		return nil, err
	}
	buf.WriteString(`,"types":[`)
	for i, node := range d.Types {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalNode(&buf, node); err != nil {
			return nil, fmt.Errorf("types[%d]: %w", i, err)
		}
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// writeCanonicalTokens emits the token map with keys in RFC 8785 order.
func writeCanonicalTokens(buf *bytes.Buffer, tokens map[string]string) error {
	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeCanonicalString(buf, tokens[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeCanonicalNode emits one node with its keys in RFC 8785 order.
// All IR keys are ASCII, so the sorted orders below are fixed per shape.
func writeCanonicalNode(buf *bytes.Buffer, node Node) error {
	switch n := node.(type) {
	case *Struct:
		fmt.Fprintf(buf, `{"all_fields_pub":%t,"features":`, n.allFieldsPub)
		if err := writeCanonicalFeatures(buf, &n.features); err != nil {
			return err
		}
		buf.WriteString(`,"fields":[`)
		for i, field := range n.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`{"ident":`)
			if err := writeCanonicalString(buf, field.ident); err != nil {
				return err
			}
			buf.WriteString(`,"type":`)
			if err := writeCanonicalType(buf, field.ty); err != nil {
				return fmt.Errorf("field %q: %w", field.ident, err)
			}
			buf.WriteByte('}')
		}
		buf.WriteString(`],"ident":`)
		if err := writeCanonicalString(buf, n.ident); err != nil {
			return err
		}
		buf.WriteString(`,"node":"struct"}`)
		return nil
	case *Enum:
		buf.WriteString(`{"features":`)
		if err := writeCanonicalFeatures(buf, &n.features); err != nil {
			return err
		}
		buf.WriteString(`,"ident":`)
		if err := writeCanonicalString(buf, n.ident); err != nil {
			return err
		}
		buf.WriteString(`,"node":"enum","variants":[`)
		for i, variant := range n.variants {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(`{"fields":[`)
			for j, ty := range variant.fields {
				if j > 0 {
					buf.WriteByte(',')
				}
				if err := writeCanonicalType(buf, ty); err != nil {
					return fmt.Errorf("variant %q: %w", variant.ident, err)
				}
			}
			buf.WriteString(`],"ident":`)
			if err := writeCanonicalString(buf, variant.ident); err != nil {
				return err
			}
			buf.WriteByte('}')
		}
		buf.WriteString("]}")
		return nil
	default:
		return fmt.Errorf("ir: unknown Node variant: %T", node)
	}
}

// writeCanonicalFeatures emits {"any":[...]} preserving flag order.
func writeCanonicalFeatures(buf *bytes.Buffer, f *Features) error {
	buf.WriteString(`{"any":[`)
	for i, flag := range f.any {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeCanonicalString(buf, flag); err != nil {
			return err
		}
	}
	buf.WriteString("]}")
	return nil
}

// writeCanonicalType emits the externally tagged type form canonically.
func writeCanonicalType(buf *bytes.Buffer, t Type) error {
	writeLeaf := func(tag string, name string) error {
		buf.WriteString(`{"` + tag + `":`)
		if err := writeCanonicalString(buf, name); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	}
	writeWrapper := func(tag string, elem Type) error {
		buf.WriteString(`{"` + tag + `":`)
		if err := writeCanonicalType(buf, elem); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	}

	switch v := t.(type) {
	case Item:
		return writeLeaf("item", string(v))
	case Std:
		return writeLeaf("std", string(v))
	case Ext:
		return writeLeaf("ext", string(v))
	case Token:
		return writeLeaf("token", string(v))
	case Group:
		return writeLeaf("group", string(v))
	case Option:
		return writeWrapper("option", v.Elem)
	case Box:
		return writeWrapper("box", v.Elem)
	case Vec:
		return writeWrapper("vec", v.Elem)
	case Tuple:
		buf.WriteString(`{"tuple":[`)
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalType(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteString("]}")
		return nil
	case Punctuated:
		buf.WriteString(`{"punctuated":{"element":`)
		if err := writeCanonicalType(buf, v.element); err != nil {
			return err
		}
		buf.WriteString(`,"punct":`)
		if err := writeCanonicalString(buf, v.punct); err != nil {
			return err
		}
		buf.WriteString("}}")
		return nil
	default:
		return fmt.Errorf("ir: unknown Type variant: %T", t)
	}
}

// writeCanonicalString emits a canonical JSON string: NFC normalized, no
// HTML escaping, and U+2028/U+2029 left literal per RFC 8785.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	encoded, err := canonicalString(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

func canonicalString(s string) ([]byte, error) {
	// NFC normalize at the serialization boundary
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // <, > and & must NOT be escaped
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// The encoder escapes U+2028/U+2029 for JavaScript compatibility;
	// RFC 8785 wants them literal.
	return unescapeU2028U2029(result), nil
}

// unescapeU2028U2029 converts   and   escape sequences back to
// literal characters, but preserves \\u2028 (escaped backslash followed by
// the text "u2028"). An escape belongs to the character only when an even
// number of backslashes precedes it.
func unescapeU2028U2029(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if i+6 <= len(data) && data[i] == '\\' && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			backslashes := 0
			for j := len(result) - 1; j >= 0 && result[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				if data[i+5] == '8' {
					result = append(result, " "...)
				} else {
					result = append(result, " "...)
				}
				i += 6
				continue
			}
		}
		result = append(result, data[i])
		i++
	}
	return result
}

// compareKeysRFC8785 compares strings using UTF-16 code unit ordering as
// required by RFC 8785. Go's native string comparison is UTF-8 byte order,
// which differs for characters outside the BMP.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
