// Package compiler performs the caller-side checks the ir package
// deliberately leaves out: referential integrity of Item references,
// identifier uniqueness at every scope, token-name resolution, and the
// consolidation of duplicate declarations that merges feature requirements
// via ir.Features.Join.
//
// Validation collects all errors rather than failing fast; only the
// feature-merge invariant panics, because a non-nested re-declaration is a
// schema authoring bug, not a reportable condition.
package compiler
