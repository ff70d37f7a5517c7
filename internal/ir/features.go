package ir

import (
	"fmt"
	"slices"
)

// Features is the set of feature flags under which a node is present in a
// build. Semantically it is a disjunction: the node exists when ANY of the
// named flags is enabled. The empty value means "always present".
//
// Insertion order is preserved for deterministic output, but membership is
// set-like: Contains ignores position and Join compares as sets.
type Features struct {
	any []string
}

// NewFeatures wraps the given flags verbatim - no dedup, no sort. The
// caller controls order.
func NewFeatures(flags ...string) Features {
	return Features{any: flags}
}

// Len returns the number of flags.
func (f *Features) Len() int {
	return len(f.any)
}

// Contains reports whether tag appears anywhere in the flag sequence.
func (f *Features) Contains(tag string) bool {
	return slices.Contains(f.any, tag)
}

// At returns the flag at position i. Out-of-range access panics: the
// sequence has no sentinel for "missing", so a bad index is a programming
// error, not a recoverable condition.
func (f *Features) At(i int) string {
	return f.any[i]
}

// Flags returns the flag sequence in original order. Callers must not
// modify the returned slice.
func (f *Features) Flags() []string {
	return f.any
}

// Join merges the feature requirement of a second declaration of the same
// logical node into f. Re-declarations must form a refinement chain: one
// side's flag set must contain the other's. The larger set wins.
//
// A pair of non-nested sets means the schema imposes contradictory
// requirements on one node; Join panics rather than produce a silently
// inconsistent IR.
func (f *Features) Join(other *Features) {
	switch {
	case len(f.any) == 0:
		f.any = slices.Clone(other.any)
	case len(f.any) < len(other.any):
		mustContainAll(other.any, f.any)
		f.any = slices.Clone(other.any)
	case len(f.any) > len(other.any):
		mustContainAll(f.any, other.any)
	default:
		mustContainAll(f.any, other.any)
		mustContainAll(other.any, f.any)
		f.any = slices.Clone(other.any)
	}
}

// mustContainAll panics unless every flag in sub appears in super.
func mustContainAll(super, sub []string) {
	for _, flag := range sub {
		if !slices.Contains(super, flag) {
			panic(fmt.Sprintf("ir: feature sets %v and %v are not nested", sub, super))
		}
	}
}
