// Package ir provides the intermediate representation consumed by the
// astgen code generator.
//
// This package contains type definitions and their serialization only.
// All other internal packages import ir; ir imports nothing internal.
// This ensures IR remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - All entities are immutable after construction. The single exception
//     is Features.Join, which the loader calls while consolidating
//     duplicate declarations before the IR reaches the renderer.
//   - Referential integrity (Item references, identifier uniqueness) is
//     NOT checked here - that is the compiler package's job.
//   - Violated merge invariants panic. A schema that declares the same
//     node under non-nested feature sets is a construction bug, not a
//     recoverable condition.
//   - All JSON tags use snake_case; union discriminators are lower-case.
package ir
