// Package kernel provides core domain primitives shared across the freight
// domain model.
//
// It currently contains a single building block:
//   - UUID: a value object for entity identifiers with validation and
//     comparison capabilities
//
// Kernel primitives are immutable and thread-safe, and enforce their own
// invariants so that aggregates built on top of them are always in a valid
// state.
package kernel
