// Package dem provides the canonical data model for detector error models.
//
// This package contains type definitions and serialization only. All other
// internal packages import dem; dem imports nothing internal. This ensures
// the model remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Events are plain value structs; transformation never mutates an input
//     event, it emits new ones
//   - Instruction order is the only ordering concept (no timestamps)
//   - Detector and observable identifiers are non-negative integers
package dem
