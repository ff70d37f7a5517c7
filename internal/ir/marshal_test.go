package ir_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defkit/astgen/internal/ir"
	"github.com/defkit/astgen/internal/testutil"
)

func TestStructDiscriminatorChain(t *testing.T) {
	node := ir.NewStruct("ExprField", ir.NewFeatures(), []ir.Field{
		ir.NewField("a", ir.Std("String")),
		ir.NewField("b", ir.Option{Elem: ir.Box{Elem: ir.Item("Expr")}}),
	}, true)

	data, err := json.Marshal(node)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "struct", raw["node"])

	fields, ok := raw["fields"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 2)

	// The type key is "type", not "ty"
	second, ok := fields[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b", second["ident"])

	// Discriminator chain: option -> box -> item("Expr")
	option, ok := second["type"].(map[string]any)
	require.True(t, ok)
	box, ok := option["option"].(map[string]any)
	require.True(t, ok, "outer discriminator should be option")
	item, ok := box["box"].(map[string]any)
	require.True(t, ok, "middle discriminator should be box")
	assert.Equal(t, "Expr", item["item"])
}

func TestEnumRoundTripPreservesVariants(t *testing.T) {
	node := ir.NewEnum("Stmt", ir.NewFeatures("full"), []ir.Variant{
		ir.NewVariant("Empty", nil),
		ir.NewVariant("Assign", []ir.Type{ir.Token("Eq")}),
	})

	data, err := json.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"node":"enum"`)

	decoded, err := ir.UnmarshalNode(data)
	require.NoError(t, err)

	enum, ok := decoded.(*ir.Enum)
	require.True(t, ok)
	assert.Equal(t, "Stmt", enum.Ident())
	assert.Equal(t, []string{"full"}, enum.Features().Flags())

	variants := enum.Variants()
	require.Len(t, variants, 2)
	assert.Equal(t, "Empty", variants[0].Ident())
	assert.Empty(t, variants[0].Fields(), "unit variant keeps zero payload types")
	assert.Equal(t, "Assign", variants[1].Ident())
	require.Len(t, variants[1].Fields(), 1)
	assert.Equal(t, ir.Token("Eq"), variants[1].Fields()[0])
}

func TestTypeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ty   ir.Type
		want string
	}{
		{"item", ir.Item("Expr"), `{"item":"Expr"}`},
		{"std", ir.Std("String"), `{"std":"String"}`},
		{"ext", ir.Ext("Span"), `{"ext":"Span"}`},
		{"token", ir.Token("Plus"), `{"token":"Plus"}`},
		{"group", ir.Group("Paren"), `{"group":"Paren"}`},
		{"vec", ir.Vec{Elem: ir.Item("Attr")}, `{"vec":{"item":"Attr"}}`},
		{"tuple", ir.Tuple{ir.Std("usize"), ir.Item("Expr")}, `{"tuple":[{"std":"usize"},{"item":"Expr"}]}`},
		{
			"punctuated",
			ir.NewPunctuated(ir.Item("Expr"), ","),
			`{"punctuated":{"element":{"item":"Expr"},"punct":","}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ir.MarshalType(tt.ty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			decoded, err := ir.UnmarshalType(data)
			require.NoError(t, err)
			assert.Equal(t, tt.ty, decoded)
		})
	}
}

func TestNestedTypeRoundTrip(t *testing.T) {
	for name, ty := range testutil.NestedTypes() {
		t.Run(name, func(t *testing.T) {
			data, err := ir.MarshalType(ty)
			require.NoError(t, err)

			decoded, err := ir.UnmarshalType(data)
			require.NoError(t, err)
			assert.Equal(t, ty, decoded)
		})
	}
}

func TestUnmarshalTypeRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown_discriminator", `{"itme":"Expr"}`},
		{"two_keys", `{"item":"Expr","std":"String"}`},
		{"empty_object", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ir.UnmarshalType([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalNodeRejectsUnknownDiscriminator(t *testing.T) {
	_, err := ir.UnmarshalNode([]byte(`{"node":"union","ident":"X"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "union")
}

func TestFeaturesMarshalNeverNull(t *testing.T) {
	data, err := json.Marshal(ir.NewFeatures())
	require.NoError(t, err)
	assert.Equal(t, `{"any":[]}`, string(data))

	data, err = json.Marshal(ir.NewFeatures("full", "derive"))
	require.NoError(t, err)
	assert.Equal(t, `{"any":["full","derive"]}`, string(data))
}

func TestDefinitionsRoundTrip(t *testing.T) {
	defs := testutil.SampleDefinitions()

	data, err := json.Marshal(defs)
	require.NoError(t, err)

	// Token keys are emitted ordered-by-key
	assert.Contains(t, string(data), `"tokens":{"+":"Plus","=":"Eq"}`)

	var decoded ir.Definitions
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.Types, len(defs.Types))
	for i, node := range decoded.Types {
		assert.Equal(t, defs.Types[i].Ident(), node.Ident())
		assert.Equal(t, defs.Types[i].Features().Flags(), node.Features().Flags())
	}
	assert.Equal(t, defs.Tokens, decoded.Tokens)

	// Nested shapes survive: ExprCall.args is a punctuated list of items
	call, ok := decoded.Types[1].(*ir.Struct)
	require.True(t, ok)
	args := call.Fields()[2]
	punct, ok := args.Type().(ir.Punctuated)
	require.True(t, ok)
	assert.Equal(t, ir.Item("Expr"), punct.Element())
	assert.Equal(t, ",", punct.Punct())
}
