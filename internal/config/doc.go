// Package config defines the contract the edge materializer uses to look up
// configuration sub-blocks by key, plus a value algebra for merging them.
//
// Configuration storage itself is an external collaborator: this package
// never reads a file or parses a format (the builder's non-goals exclude
// that). It only specifies how a sub-block's value is represented
// (cty.Value, the same value algebra the wider retrieval pack's HCL-based
// teacher uses) and how the three-layer override in spec.md section 4.5 is
// merged once the caller's storage has produced the layers. MapLookup is a
// reference Lookup backed by a plain Go map, useful for tests and for
// embedders that don't need a real configuration backend.
package config
