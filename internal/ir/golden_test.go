package ir_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/defkit/astgen/internal/ir"
	"github.com/defkit/astgen/internal/testutil"
)

// The serialized form is a contract shared with the renderer and any
// debugging tooling; golden files pin it down byte for byte.
//
// To regenerate golden files, run:
//
//	go test ./internal/ir -update

func TestGoldenDefinitionsJSON(t *testing.T) {
	defs := testutil.SampleDefinitions()

	data, err := json.Marshal(defs)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "sample_definitions", append(data, '\n'))
}

func TestGoldenDefinitionsCanonical(t *testing.T) {
	defs := testutil.SampleDefinitions()

	data, err := ir.MarshalCanonical(defs)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "sample_definitions_canonical", append(data, '\n'))
}
