package jsondiff

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// OpKind names a plain RFC 6902 operation.
type OpKind string

const (
	OpAdd     = OpKind("add")
	OpRemove  = OpKind("remove")
	OpReplace = OpKind("replace")
	OpMove    = OpKind("move")
	OpCopy    = OpKind("copy")
	OpTest    = OpKind("test")
)

// Operation is a single edit in the plain RFC 6902 wire format. From is only
// meaningful for move and copy; Value only for add, replace and test.
type Operation struct {
	Op    OpKind      `json:"op"`
	Path  string      `json:"path"`
	From  string      `json:"from,omitempty"`
	Value interface{} `json:"value,omitempty"`
}

// PlainPatch is an ordered list of plain operations. Operations apply left to
// right; each operation's pointer resolves against the document as mutated by
// all prior operations in the same patch.
type PlainPatch []Operation

// wireOperation is the encoding shadow of Operation. The pointer-typed
// fields let move/copy carry a "from" naming the root (the empty pointer)
// and add/replace/test carry an explicit JSON null, both of which omitempty
// on the plain field would silently drop.
type wireOperation struct {
	Op    OpKind           `json:"op"`
	Path  string           `json:"path"`
	From  *string          `json:"from,omitempty"`
	Value *json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON writes the RFC 6902 object form, keeping the "from" member
// present for move and copy and the "value" member present for add, replace
// and test even when they are empty or null.
func (o Operation) MarshalJSON() ([]byte, error) {
	w := wireOperation{Op: o.Op, Path: o.Path}
	switch o.Op {
	case OpMove, OpCopy:
		from := o.From
		w.From = &from
	case OpAdd, OpReplace, OpTest:
		data, err := json.Marshal(o.Value)
		if err != nil {
			return nil, err
		}
		raw := json.RawMessage(data)
		w.Value = &raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the RFC 6902 object form, decoding carried values into
// the package's value model.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var w wireOperation
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	o.Op, o.Path, o.From, o.Value = w.Op, w.Path, "", nil
	if w.From != nil {
		o.From = *w.From
	}
	if w.Value != nil {
		v, err := DecodeJSON(*w.Value)
		if err != nil {
			return err
		}
		o.Value = v
	}
	return nil
}

// Encode serializes the patch to its JSON wire form, a JSON array of
// operation objects. An empty patch encodes as "[]".
func (p PlainPatch) Encode() ([]byte, error) {
	if p == nil {
		p = PlainPatch{}
	}
	return json.Marshal(p)
}

// DecodePatch parses the JSON wire form of a plain patch, validating it
// against the apply engine's own decoder so anything returned here is
// guaranteed to be applicable.
func DecodePatch(data []byte) (PlainPatch, error) {
	if _, err := jsonpatch.DecodePatch(data); err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	var p PlainPatch
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}
	return p, nil
}
