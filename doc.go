// Package jsondiff computes minimal edit scripts ("patches") between two
// tree-structured JSON-like values, and can express those scripts in an
// invertible form that carries enough old/new value metadata to be
// mechanically reversed, undoing the edit exactly.
//
// Instead of operating on encoded JSON directly, jsondiff operates on the go
// types produced by unmarshaling generic JSON, which are two compound types:
//
//	map[string]interface{}
//	[]interface{}
//
// and five scalar types:
//
//	string, int64, float64, bool, nil
//
// by operating on native go types jsondiff can compare documents decoded from
// different encodings; the shipped CLI decodes YAML as readily as JSON.
// DecodeJSON produces values in this model, decoding integral numbers as
// int64 before falling back to float64.
//
// Two diff strategies are provided. InvertibleDiff (and Diff, its plain-form
// wrapper) selects between alternative edit scripts by weighing candidates,
// by default using the byte length of their serialized form, so one large
// replace is preferred over many small edits exactly when it is smaller on
// the wire. The search is exponential in the length of a heavily reordered
// list region; CheapDiff trades edit-script minimality for strictly linear
// cost by aligning list elements index by index. Both strategies always
// succeed: any pair of values has some diff, in the worst case a single
// whole-document replace.
//
// The invertible form supports an algebra: Invert reverses a patch, Merge
// folds matching remove/add pairs into moves, ToPatch and ToMinimalPatch
// lower a patch to the plain RFC 6902 operation list, and FromPatch recovers
// the invertible form from a patch produced by ToPatch. Application of plain
// patches is delegated to evanphx/json-patch rather than re-implemented; see
// PlainPatch.Apply.
package jsondiff
