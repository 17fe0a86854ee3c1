package jsondiff

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Apply runs the patch against doc and returns the patched value; doc itself
// is never mutated. Application is delegated to evanphx/json-patch: failure
// to resolve a pointer, a test whose stored value does not match, or a
// structurally invalid operation surface as that engine's errors.
//
// The engine only accepts object or array documents and cannot address the
// document root, so the document is wrapped in a one-element array and every
// pointer prefixed with "/0" for the duration of the call. This keeps scalar
// roots and nested edits working without re-implementing any application
// semantics. Operations the wrapper cannot express, those whose path is the
// empty pointer and moves out of the root, are handled here directly: an add
// or replace at the root replaces the whole document, a remove at the root
// leaves null, and a move or copy into the root makes its from value the
// document.
func (p PlainPatch) Apply(doc interface{}) (interface{}, error) {
	batch := make(PlainPatch, 0, len(p))
	var err error
	for _, op := range p {
		if op.Path != "" && !(op.Op == OpMove && op.From == "") {
			batch = append(batch, op)
			continue
		}
		if doc, err = applyBatch(batch, doc); err != nil {
			return nil, err
		}
		batch = batch[:0]
		if doc, err = applyRoot(op, doc); err != nil {
			return nil, err
		}
	}
	return applyBatch(batch, doc)
}

// applyBatch delegates a run of non-root operations to the engine, prefixing
// every pointer into the wrapper.
func applyBatch(ops PlainPatch, doc interface{}) (interface{}, error) {
	if len(ops) == 0 {
		return doc, nil
	}
	wrapped := make(PlainPatch, len(ops))
	for i, op := range ops {
		op.Path = "/0" + op.Path
		if op.Op == OpMove || op.Op == OpCopy {
			op.From = "/0" + op.From
		}
		wrapped[i] = op
	}
	arr, err := applyWrapped(wrapped, doc)
	if err != nil {
		return nil, err
	}
	if len(arr) != 1 {
		return nil, fmt.Errorf("patched document lost its root wrapper")
	}
	return arr[0], nil
}

// applyRoot applies a single operation addressing the whole document. Adding
// at an array index inserts rather than overwrites, so a root add (or
// remove) run through the wrapper would change the wrapper's length instead
// of its single element.
func applyRoot(op Operation, doc interface{}) (interface{}, error) {
	switch op.Op {
	case OpAdd, OpReplace:
		return normalize(op.Value), nil
	case OpRemove:
		return nil, nil
	case OpTest:
		if !valueEqual(normalize(op.Value), doc) {
			return nil, fmt.Errorf("test at %q failed", op.Path)
		}
		return doc, nil
	case OpMove, OpCopy:
		if op.From == "" && op.Path == "" {
			return doc, nil
		}
		if op.From == "" {
			return nil, fmt.Errorf("cannot move the document root into %q", op.Path)
		}
		// lift the from value into the wrapper's spare slot, letting the
		// engine do the pointer resolution
		arr, err := applyWrapped(PlainPatch{{Op: OpCopy, From: "/0" + op.From, Path: "/1"}}, doc)
		if err != nil {
			return nil, err
		}
		if len(arr) != 2 {
			return nil, fmt.Errorf("patched document lost its root wrapper")
		}
		return arr[1], nil
	}
	return nil, fmt.Errorf("unknown operation %q at %q", op.Op, op.Path)
}

// applyWrapped runs ops against the one-element wrapper [doc] through the
// engine and returns the patched wrapper. Pointers in ops address the
// wrapper, not the document.
func applyWrapped(ops PlainPatch, doc interface{}) ([]interface{}, error) {
	patchData, err := ops.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}

	docData, err := json.Marshal([]interface{}{doc})
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	out, err := patch.Apply(docData)
	if err != nil {
		return nil, err
	}

	res, err := DecodeJSON(out)
	if err != nil {
		return nil, fmt.Errorf("decoding patched document: %w", err)
	}
	arr, ok := res.([]interface{})
	if !ok {
		return nil, fmt.Errorf("patched document lost its root wrapper")
	}
	return arr, nil
}
