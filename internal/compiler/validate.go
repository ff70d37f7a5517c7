package compiler

import (
	"fmt"
	"strings"

	"github.com/defkit/astgen/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrEmptyIdent       = "E100" // node/field/variant identifier is empty
	ErrDuplicateIdent   = "E101" // duplicate node identifier
	ErrDuplicateField   = "E102" // duplicate field name within a struct
	ErrDuplicateVariant = "E103" // duplicate variant name within an enum
	ErrUnknownItem      = "E104" // Item reference to an undefined node
	ErrUnknownToken     = "E105" // Token reference with no canonical name
	ErrNilType          = "E106" // missing type where one is required

	// Consolidation errors (E110-E119)
	ErrKindMismatch = "E110" // struct and enum declared under one name
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a Definitions value against the referential rules the IR
// itself does not enforce. Returns all errors found (does not fail-fast).
func Validate(defs *ir.Definitions) []ValidationError {
	var errs []ValidationError

	// Node identifiers: non-empty, unique across the whole collection.
	idents := make(map[string]bool, len(defs.Types))
	for i, node := range defs.Types {
		ident := node.Ident()
		if strings.TrimSpace(ident) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("types[%d]", i),
				Message: "node identifier must be non-empty",
				Code:    ErrEmptyIdent,
			})
			continue
		}
		if idents[ident] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("types[%d]", i),
				Message: fmt.Sprintf("duplicate node identifier %q", ident),
				Code:    ErrDuplicateIdent,
			})
		}
		idents[ident] = true
	}

	// Canonical token names are the values of the Tokens map.
	tokenNames := make(map[string]bool, len(defs.Tokens))
	for _, name := range defs.Tokens {
		tokenNames[name] = true
	}

	for _, node := range defs.Types {
		switch n := node.(type) {
		case *ir.Struct:
			errs = append(errs, validateStruct(n, idents, tokenNames)...)
		case *ir.Enum:
			errs = append(errs, validateEnum(n, idents, tokenNames)...)
		}
	}

	return errs
}

func validateStruct(s *ir.Struct, idents, tokenNames map[string]bool) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(s.Fields()))
	for i, field := range s.Fields() {
		path := fmt.Sprintf("%s.fields[%d]", s.Ident(), i)
		if field.Ident() == "" {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: "field identifier must be non-empty",
				Code:    ErrEmptyIdent,
			})
		}
		if seen[field.Ident()] {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("duplicate field name %q", field.Ident()),
				Code:    ErrDuplicateField,
			})
		}
		seen[field.Ident()] = true

		errs = append(errs, validateType(path, field.Type(), idents, tokenNames)...)
	}
	return errs
}

func validateEnum(e *ir.Enum, idents, tokenNames map[string]bool) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool, len(e.Variants()))
	for i, variant := range e.Variants() {
		path := fmt.Sprintf("%s.variants[%d]", e.Ident(), i)
		if variant.Ident() == "" {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: "variant identifier must be non-empty",
				Code:    ErrEmptyIdent,
			})
		}
		if seen[variant.Ident()] {
			errs = append(errs, ValidationError{
				Field:   path,
				Message: fmt.Sprintf("duplicate variant name %q", variant.Ident()),
				Code:    ErrDuplicateVariant,
			})
		}
		seen[variant.Ident()] = true

		for j, ty := range variant.Fields() {
			errs = append(errs, validateType(fmt.Sprintf("%s[%d]", path, j), ty, idents, tokenNames)...)
		}
	}
	return errs
}

// validateType walks a type tree, checking every Item reference against the
// node identifier set and every Token against the canonical token names.
func validateType(path string, t ir.Type, idents, tokenNames map[string]bool) []ValidationError {
	switch v := t.(type) {
	case nil:
		return []ValidationError{{
			Field:   path,
			Message: "type is missing",
			Code:    ErrNilType,
		}}
	case ir.Item:
		if !idents[string(v)] {
			return []ValidationError{{
				Field:   path,
				Message: fmt.Sprintf("item type references undefined node %q", string(v)),
				Code:    ErrUnknownItem,
			}}
		}
		return nil
	case ir.Token:
		if !tokenNames[string(v)] {
			return []ValidationError{{
				Field:   path,
				Message: fmt.Sprintf("token type %q has no canonical token name", string(v)),
				Code:    ErrUnknownToken,
			}}
		}
		return nil
	case ir.Option:
		return validateType(path+".option", v.Elem, idents, tokenNames)
	case ir.Box:
		return validateType(path+".box", v.Elem, idents, tokenNames)
	case ir.Vec:
		return validateType(path+".vec", v.Elem, idents, tokenNames)
	case ir.Punctuated:
		return validateType(path+".punctuated", v.Element(), idents, tokenNames)
	case ir.Tuple:
		var errs []ValidationError
		for i, elem := range v {
			errs = append(errs, validateType(fmt.Sprintf("%s.tuple[%d]", path, i), elem, idents, tokenNames)...)
		}
		return errs
	default:
		// Std, Ext and Group are opaque to the IR.
		return nil
	}
}
