package config

import "github.com/zclconf/go-cty/cty"

// Merge folds a sequence of object-typed cty.Value sub-blocks into one,
// later layers overriding attributes of earlier ones. Missing layers
// (the zero cty.Value) are skipped. Non-object layers are rejected with a
// panic: a sub-block lookup returning a non-object value is a caller bug,
// not a runtime condition the edge materializer can recover from.
//
// This implements the three-layer merge of spec.md section 4.5: base
// "_edge", then "_edge_by_type/<downstream-type>", then
// "_edge_by_conn/<upstream-addr>" and "_edge_by_conn/<downstream-addr>",
// applied in that order.
func Merge(layers ...cty.Value) cty.Value {
	merged := map[string]cty.Value{}
	for _, layer := range layers {
		if !layer.IsKnown() || layer.IsNull() {
			continue
		}
		if !layer.Type().IsObjectType() {
			panic("config: Merge requires object-typed sub-blocks")
		}
		for k, v := range layer.AsValueMap() {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(merged)
}

// WithBool returns a copy of obj with key set to the given boolean value,
// overriding any existing attribute of that name. Used by the edge
// materializer to force the "dependency" key to a computed value after the
// configured layers have been merged (spec.md section 4.5, step 5).
func WithBool(obj cty.Value, key string, value bool) cty.Value {
	vals := map[string]cty.Value{}
	if obj.Type().IsObjectType() && !obj.IsNull() {
		for k, v := range obj.AsValueMap() {
			vals[k] = v
		}
	}
	vals[key] = cty.BoolVal(value)
	return cty.ObjectVal(vals)
}
