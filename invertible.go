package jsondiff

import (
	"fmt"
	"strconv"
)

// Op is a single invertible edit: a closed sum over Add, Remove, Replace and
// Move. Remove and Replace carry the value they displace, which is purely
// metadata for inversion and never consulted during forward application.
type Op interface {
	isOp()
}

// Add inserts Value at Path. At an array index the value is inserted, not
// overwritten.
type Add struct {
	Path  Pointer
	Value interface{}
}

// Remove deletes the value at Path, carrying it so the operation can be
// inverted.
type Remove struct {
	Path  Pointer
	Value interface{}
}

// Replace swaps Old for New at Path.
type Replace struct {
	Path Pointer
	Old  interface{}
	New  interface{}
}

// Move relocates the value at From to To.
type Move struct {
	From Pointer
	To   Pointer
}

func (Add) isOp()     {}
func (Remove) isOp()  {}
func (Replace) isOp() {}
func (Move) isOp()    {}

// Patch is an ordered list of invertible operations, applied left to right.
// Applying a Patch is always equivalent to applying its ToMinimalPatch
// translation.
type Patch []Op

// Invert returns the patch that undoes p: operation order is reversed and
// each operation becomes its logical opposite. Inversion is a pure total
// transform and self-inverse: p.Invert().Invert() is structurally equal to p.
func (p Patch) Invert() Patch {
	inv := make(Patch, len(p))
	for i, op := range p {
		j := len(p) - 1 - i
		switch o := op.(type) {
		case Add:
			inv[j] = Remove{Path: o.Path, Value: o.Value}
		case Remove:
			inv[j] = Add{Path: o.Path, Value: o.Value}
		case Replace:
			inv[j] = Replace{Path: o.Path, Old: o.New, New: o.Old}
		case Move:
			inv[j] = Move{From: o.To, To: o.From}
		}
	}
	return inv
}

// ToPatch lowers the patch to plain form, emitting a test before every
// remove and replace. The tests carry the displaced values across the
// translation, so the invertible form can be recovered with FromPatch.
func (p Patch) ToPatch() PlainPatch {
	out := make(PlainPatch, 0, len(p))
	for _, op := range p {
		switch o := op.(type) {
		case Add:
			out = append(out, Operation{Op: OpAdd, Path: o.Path.String(), Value: o.Value})
		case Remove:
			out = append(out,
				Operation{Op: OpTest, Path: o.Path.String(), Value: o.Value},
				Operation{Op: OpRemove, Path: o.Path.String()})
		case Replace:
			out = append(out,
				Operation{Op: OpTest, Path: o.Path.String(), Value: o.Old},
				Operation{Op: OpReplace, Path: o.Path.String(), Value: o.New})
		case Move:
			out = append(out, Operation{Op: OpMove, From: o.From.String(), Path: o.To.String()})
		}
	}
	return out
}

// ToMinimalPatch is ToPatch without the test operations: strictly smaller,
// suitable for storage and transmission, but no longer recoverable with
// FromPatch.
func (p Patch) ToMinimalPatch() PlainPatch {
	out := make(PlainPatch, 0, len(p))
	for _, op := range p {
		switch o := op.(type) {
		case Add:
			out = append(out, Operation{Op: OpAdd, Path: o.Path.String(), Value: o.Value})
		case Remove:
			out = append(out, Operation{Op: OpRemove, Path: o.Path.String()})
		case Replace:
			out = append(out, Operation{Op: OpReplace, Path: o.Path.String(), Value: o.New})
		case Move:
			out = append(out, Operation{Op: OpMove, From: o.From.String(), Path: o.To.String()})
		}
	}
	return out
}

// Apply strips the inversion metadata and delegates to the plain apply
// engine.
func (p Patch) Apply(doc interface{}) (interface{}, error) {
	return p.ToMinimalPatch().Apply(doc)
}

// FromPatch recovers the invertible form of a plain patch produced by
// ToPatch. Only patches in that exact shape parse: every remove and replace
// must be immediately preceded by a test at the same pointer carrying the
// displaced value. Copy is rejected outright: removing the target of a copy
// could invert to either a remove or a re-copy, so no unambiguous inverse
// exists.
func FromPatch(plain PlainPatch) (Patch, error) {
	var out Patch
	for i := 0; i < len(plain); i++ {
		op := plain[i]
		switch op.Op {
		case OpAdd:
			path, err := ParsePointer(op.Path)
			if err != nil {
				return nil, err
			}
			out = append(out, Add{Path: path, Value: op.Value})
		case OpMove:
			from, err := ParsePointer(op.From)
			if err != nil {
				return nil, err
			}
			to, err := ParsePointer(op.Path)
			if err != nil {
				return nil, err
			}
			out = append(out, Move{From: from, To: to})
		case OpTest:
			if i == len(plain)-1 {
				return nil, fmt.Errorf("test at %q is not followed by a remove or replace", op.Path)
			}
			next := plain[i+1]
			switch next.Op {
			case OpRemove:
				if next.Path != op.Path {
					return nil, fmt.Errorf("test at %q does not match remove at %q", op.Path, next.Path)
				}
				path, err := ParsePointer(op.Path)
				if err != nil {
					return nil, err
				}
				out = append(out, Remove{Path: path, Value: op.Value})
			case OpReplace:
				if next.Path != op.Path {
					return nil, fmt.Errorf("test at %q does not match replace at %q", op.Path, next.Path)
				}
				path, err := ParsePointer(op.Path)
				if err != nil {
					return nil, err
				}
				out = append(out, Replace{Path: path, Old: op.Value, New: next.Value})
			default:
				return nil, fmt.Errorf("test at %q is not followed by a remove or replace", op.Path)
			}
			i++
		case OpRemove:
			return nil, fmt.Errorf("remove at %q must be preceded by a matching test", op.Path)
		case OpReplace:
			return nil, fmt.Errorf("replace at %q must be preceded by a matching test", op.Path)
		case OpCopy:
			return nil, fmt.Errorf("copy from %q to %q is ambiguous to invert", op.From, op.Path)
		default:
			return nil, fmt.Errorf("unknown operation %q at %q", op.Op, op.Path)
		}
	}
	return out, nil
}

// Merge folds remove/add pairs carrying structurally equal values into
// single moves. Merging never changes what applying the patch produces, only
// the operation count: a pair is folded only when every operation between
// the remove and the add is independent of both pointers, so the add can be
// pulled back to the remove's position. The scan is deterministic: the first
// remove folds with the first later qualifying add, repeatedly, until no
// pair folds.
func (p Patch) Merge() Patch {
	out := make(Patch, len(p))
	copy(out, p)
	for i := 0; i < len(out); i++ {
		rem, ok := out[i].(Remove)
		if !ok {
			continue
		}
		for j := i + 1; j < len(out); j++ {
			add, ok := out[j].(Add)
			if !ok || !valueEqual(rem.Value, add.Value) {
				continue
			}
			if !independent(out[i+1:j], rem.Path, add.Path) {
				continue
			}
			out[i] = Move{From: rem.Path, To: add.Path}
			out = append(out[:j], out[j+1:]...)
			break
		}
	}
	return out
}

// independent reports whether none of ops addresses a location that could
// affect, or be affected by, an edit at p or q.
func independent(ops Patch, p, q Pointer) bool {
	for _, op := range ops {
		for _, ptr := range opPointers(op) {
			if !disjoint(ptr, p) || !disjoint(ptr, q) {
				return false
			}
		}
	}
	return true
}

func opPointers(op Op) []Pointer {
	switch o := op.(type) {
	case Add:
		return []Pointer{o.Path}
	case Remove:
		return []Pointer{o.Path}
	case Replace:
		return []Pointer{o.Path}
	case Move:
		return []Pointer{o.From, o.To}
	}
	return nil
}

// disjoint reports whether edits at a and b cannot interfere: the pointers
// must diverge at a non-numeric token, since siblings under an array shift
// each other's indices, and neither may be a prefix of the other.
func disjoint(a, b Pointer) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return !isIndexToken(a[i]) && !isIndexToken(b[i])
		}
	}
	return false
}

func isIndexToken(tok string) bool {
	_, err := strconv.Atoi(tok)
	return err == nil
}
