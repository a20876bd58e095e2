package config

import "github.com/zclconf/go-cty/cty"

// SubBlockLookup is the contract the edge materializer uses to fetch a
// configuration sub-block by its literal key (e.g. "_edge",
// "_edge_by_type/int", "_edge_by_conn/a.out"). It returns the zero
// cty.Value and false if no such sub-block was configured; an absent
// sub-block is not an error, it simply contributes nothing to the merge.
type SubBlockLookup interface {
	SubBlock(key string) (cty.Value, bool)
}

// MapLookup is a SubBlockLookup backed by a plain in-memory map. It does
// not parse any file format; callers populate it directly with cty.Value
// object maps, e.g. in tests or from an already-decoded in-memory source.
type MapLookup map[string]cty.Value

// SubBlock implements SubBlockLookup.
func (m MapLookup) SubBlock(key string) (cty.Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Empty is a SubBlockLookup with no sub-blocks configured; every key
// misses, so edges are materialized with only the dependency key set.
var Empty SubBlockLookup = MapLookup(nil)
