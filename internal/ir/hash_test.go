package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashFixture(ident string) *Definitions {
	return &Definitions{
		Types: []Node{
			NewStruct(ident, NewFeatures("full"), []Field{
				NewField("expr", Box{Elem: Item(ident)}),
			}, true),
		},
		Tokens: map[string]string{"+": "Plus", "=": "Eq", "=>": "FatArrow"},
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a, err := Fingerprint(hashFixture("Expr"))
	require.NoError(t, err)
	b, err := Fingerprint(hashFixture("Expr"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "fingerprint is hex-encoded SHA-256")
}

func TestFingerprintSensitiveToContent(t *testing.T) {
	a, err := Fingerprint(hashFixture("Expr"))
	require.NoError(t, err)
	b, err := Fingerprint(hashFixture("Stmt"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// A feature change alone must also change the fingerprint
	gated := hashFixture("Expr")
	other := NewFeatures("full", "derive")
	gated.Types[0].Features().Join(&other)
	c, err := Fingerprint(gated)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestHashDomainSeparation(t *testing.T) {
	// The null separator keeps the domain/data boundary unambiguous:
	// ("ab" + "c") and ("a" + "bc") must not collide.
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))

	// Same data under different domains yields different identities
	assert.NotEqual(t, hashWithDomain("x/v1", []byte("data")), hashWithDomain("x/v2", []byte("data")))
}
