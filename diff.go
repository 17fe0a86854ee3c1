package jsondiff

import (
	"math"
	"sort"
)

// WeightFunc scores a candidate patch; lower is better. The diff engine uses
// it to choose among alternative edit scripts.
type WeightFunc func(Patch) int

// EncodedSize is the default weight: the byte length of the JSON encoding of
// the patch's minimal plain form. Expensive, since every candidate is
// re-encoded, but it accounts for large embedded values correctly.
func EncodedSize(p Patch) int {
	data, err := p.ToMinimalPatch().Encode()
	if err != nil {
		return math.MaxInt
	}
	return len(data)
}

// OperationCount weighs a patch by its number of operations. Cheap, but it
// can favor many small edits over one large embedded replace even when the
// replace is smaller on the wire.
func OperationCount(p Patch) int {
	return len(p)
}

// Diff computes a minimal plain edit script that, applied to a, yields b.
func Diff(a, b interface{}) PlainPatch {
	return InvertibleDiff(a, b).ToMinimalPatch()
}

// InvertibleDiff computes an invertible edit script that, applied to a,
// yields b, selecting candidates with the default EncodedSize weight.
// Diffing is total: it never fails, in the worst case producing a single
// whole-document replace.
func InvertibleDiff(a, b interface{}) Patch {
	return DiffWithCustomWeight(a, b, EncodedSize)
}

// DiffWithCustomWeight is InvertibleDiff under a caller-supplied weight
// function.
func DiffWithCustomWeight(a, b interface{}, weight WeightFunc) Patch {
	if weight == nil {
		weight = EncodedSize
	}
	d := &differ{weight: weight}
	return d.diff(nil, normalize(a), normalize(b))
}

// CheapDiff computes an invertible edit script in time linear in the number
// of compared elements. Lists are aligned index by index with no alternative
// exploration, so a single leading insertion or deletion can make every
// subsequent element look replaced rather than shifted. The result is always
// correct, just not necessarily minimal.
func CheapDiff(a, b interface{}) Patch {
	d := &differ{cheap: true}
	return d.diff(nil, normalize(a), normalize(b))
}

// differ carries the strategy for a single diff computation. The computation
// is pure and single-threaded; concurrent callers each get their own differ.
type differ struct {
	weight WeightFunc
	cheap  bool
}

// diff is the recursive, pointer-scoped comparison. Values of the same
// primitive kind compare by value; arrays and objects delegate to their
// sub-algorithms; any other pairing, including a type mismatch, becomes a
// wholesale replace.
func (d *differ) diff(p Pointer, a, b interface{}) Patch {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb || ka == vtUnknown {
		return Patch{Replace{Path: p, Old: a, New: b}}
	}
	switch ka {
	case vtArray:
		return d.diffArray(p, a.([]interface{}), b.([]interface{}))
	case vtObject:
		return d.diffObject(p, a.(map[string]interface{}), b.(map[string]interface{}))
	default:
		if valueEqual(a, b) {
			return nil
		}
		return Patch{Replace{Path: p, Old: a, New: b}}
	}
}

// diffObject diffs by key: shared keys recurse, keys only in a are removed,
// keys only in b are added. Keys are visited in sorted order for
// reproducible output; member order is not semantically significant. Under
// the optimizing strategy the per-key script is weighed against replacing
// the whole object and the cheaper form wins.
func (d *differ) diffObject(p Pointer, a, b map[string]interface{}) Patch {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, shared := a[k]; !shared {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var ops Patch
	for _, k := range keys {
		va, inA := a[k]
		vb, inB := b[k]
		switch {
		case inA && inB:
			ops = append(ops, d.diff(p.Key(k), va, vb)...)
		case inA:
			ops = append(ops, Remove{Path: p.Key(k), Value: va})
		default:
			ops = append(ops, Add{Path: p.Key(k), Value: vb})
		}
	}
	if d.cheap || len(ops) == 0 {
		return ops
	}

	replace := Patch{Replace{Path: p, Old: a, New: b}}
	if d.weight(replace) < d.weight(ops) {
		return replace
	}
	return ops
}

// seqOp pairs an operation with a signed ordering key: removals and in-place
// element edits carry the negated source index, additions the destination
// index. Stable-sorting ascending yields removals in descending index order
// followed by additions in ascending order, which keeps every index valid
// when the patch executes strictly left to right.
type seqOp struct {
	key int
	op  Op
}

func (d *differ) diffArray(p Pointer, a, b []interface{}) Patch {
	var seq []seqOp
	if d.cheap {
		seq = d.cheapList(p, a, b)
	} else {
		seq = d.optimalList(p, reversed(a), reversed(b))
	}
	if len(seq) == 0 {
		return nil
	}
	sort.SliceStable(seq, func(i, j int) bool { return seq[i].key < seq[j].key })
	ops := make(Patch, len(seq))
	for i, s := range seq {
		ops[i] = s.op
	}
	return ops
}

// optimalList is the cost-optimizing list diff. Both slices arrive reversed:
// processing tail-first keeps earlier operations' indices valid, because
// editing index i never renumbers indices below i. ra[0] is the last
// remaining element of a and len(ra)-1 its index; likewise for rb.
//
// At each mismatch three continuations are weighed: drop the a element,
// insert the b element, or edit the pair in place. The recursion has no
// memoization, so cost is exponential in the length of the differing region;
// CheapDiff is the documented escape hatch.
func (d *differ) optimalList(p Pointer, ra, rb []interface{}) []seqOp {
	switch {
	case len(ra) == 0 && len(rb) == 0:
		return nil
	case len(ra) == 0:
		var seq []seqOp
		for len(rb) > 0 {
			bh, bt := rb[0], rb[1:]
			seq = append(seq, seqOp{key: len(bt), op: Add{Path: p.Index(len(bt)), Value: bh}})
			rb = bt
		}
		return seq
	case len(rb) == 0:
		var seq []seqOp
		for len(ra) > 0 {
			ah, at := ra[0], ra[1:]
			seq = append(seq, seqOp{key: -len(at), op: Remove{Path: p.Index(len(at)), Value: ah}})
			ra = at
		}
		return seq
	}

	ah, at := ra[0], ra[1:]
	bh, bt := rb[0], rb[1:]
	idx := len(at)

	elem := d.diff(p.Index(idx), ah, bh)
	if len(elem) == 0 {
		return d.optimalList(p, at, bt)
	}

	dropA := append([]seqOp{{key: -idx, op: Remove{Path: p.Index(idx), Value: ah}}},
		d.optimalList(p, at, rb)...)
	insertB := append([]seqOp{{key: len(bt), op: Add{Path: p.Index(len(bt)), Value: bh}}},
		d.optimalList(p, ra, bt)...)
	editPair := append(keyed(elem, -idx), d.optimalList(p, at, bt)...)

	wa, wb, wc := d.seqWeight(dropA), d.seqWeight(insertB), d.seqWeight(editPair)
	switch {
	case wa <= wb && wa <= wc:
		return dropA
	case wb <= wc:
		return insertB
	default:
		return editPair
	}
}

// cheapList aligns elements index by index. When a is at least as long as b
// it walks from the end downward, turning the surplus of a into removals;
// otherwise it walks upward, turning the surplus of b into additions. Either
// walk emits operations whose indices are already valid in order.
func (d *differ) cheapList(p Pointer, a, b []interface{}) []seqOp {
	var seq []seqOp
	if len(a) >= len(b) {
		for i := len(a) - 1; i >= 0; i-- {
			if i >= len(b) {
				seq = append(seq, seqOp{key: -i, op: Remove{Path: p.Index(i), Value: a[i]}})
				continue
			}
			seq = append(seq, keyed(d.diff(p.Index(i), a[i], b[i]), -i)...)
		}
		return seq
	}
	for i := 0; i < len(b); i++ {
		if i >= len(a) {
			seq = append(seq, seqOp{key: i, op: Add{Path: p.Index(i), Value: b[i]}})
			continue
		}
		seq = append(seq, keyed(d.diff(p.Index(i), a[i], b[i]), -i)...)
	}
	return seq
}

func (d *differ) seqWeight(seq []seqOp) int {
	ops := make(Patch, len(seq))
	for i, s := range seq {
		ops[i] = s.op
	}
	return d.weight(ops)
}

func keyed(ops Patch, key int) []seqOp {
	seq := make([]seqOp, len(ops))
	for i, op := range ops {
		seq[i] = seqOp{key: key, op: op}
	}
	return seq
}

func reversed(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
