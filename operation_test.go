package jsondiff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOperationEncoding(t *testing.T) {
	cases := []struct {
		description string
		op          Operation
		wire        string
	}{
		{
			"add keeps an explicit null value",
			Operation{Op: OpAdd, Path: "/a", Value: nil},
			`{"op":"add","path":"/a","value":null}`,
		},
		{
			"replace keeps falsy values",
			Operation{Op: OpReplace, Path: "/a", Value: false},
			`{"op":"replace","path":"/a","value":false}`,
		},
		{
			"remove has no value member",
			Operation{Op: OpRemove, Path: "/a"},
			`{"op":"remove","path":"/a"}`,
		},
		{
			"move carries from",
			Operation{Op: OpMove, From: "/a", Path: "/b"},
			`{"op":"move","path":"/b","from":"/a"}`,
		},
		{
			"copy from the root keeps its from member",
			Operation{Op: OpCopy, From: "", Path: "/b"},
			`{"op":"copy","path":"/b","from":""}`,
		},
		{
			"test with a compound value",
			Operation{Op: OpTest, Path: "/a", Value: []interface{}{int64(1), "x"}},
			`{"op":"test","path":"/a","value":[1,"x"]}`,
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			data, err := c.op.MarshalJSON()
			if err != nil {
				t.Fatalf("encoding: %s", err)
			}
			if string(data) != c.wire {
				t.Errorf("encoded form = %s, want %s", data, c.wire)
			}

			var back Operation
			if err := back.UnmarshalJSON(data); err != nil {
				t.Fatalf("decoding: %s", err)
			}
			if d := cmp.Diff(c.op, back); d != "" {
				t.Errorf("decoded operation mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestPatchEncode(t *testing.T) {
	data, err := PlainPatch(nil).Encode()
	if err != nil {
		t.Fatalf("encoding nil patch: %s", err)
	}
	if string(data) != "[]" {
		t.Errorf("nil patch encodes as %s, want []", data)
	}

	p := PlainPatch{
		{Op: OpRemove, Path: "/a"},
		{Op: OpAdd, Path: "/b", Value: int64(7)},
	}
	data, err = p.Encode()
	if err != nil {
		t.Fatalf("encoding patch: %s", err)
	}
	want := `[{"op":"remove","path":"/a"},{"op":"add","path":"/b","value":7}]`
	if string(data) != want {
		t.Errorf("encoded patch = %s, want %s", data, want)
	}
}

func TestDecodePatch(t *testing.T) {
	p, err := DecodePatch([]byte(`[{"op":"replace","path":"/a","value":1.5},{"op":"copy","from":"/a","path":"/b"}]`))
	if err != nil {
		t.Fatalf("decoding: %s", err)
	}
	expect := PlainPatch{
		{Op: OpReplace, Path: "/a", Value: float64(1.5)},
		{Op: OpCopy, From: "/a", Path: "/b"},
	}
	if d := cmp.Diff(expect, p); d != "" {
		t.Errorf("decoded patch mismatch (-want +got):\n%s", d)
	}

	for _, bad := range []string{
		`{"op":"add"}`,
		`not json`,
	} {
		if _, err := DecodePatch([]byte(bad)); err == nil {
			t.Errorf("expected decoding %s to fail", bad)
		} else if !strings.Contains(err.Error(), "decoding patch") {
			t.Errorf("error %q missing decode context", err)
		}
	}
}

func TestDecodeJSONNumbers(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"i":3,"f":3.0,"big":9007199254740993,"arr":[1,2.5]}`))
	if err != nil {
		t.Fatalf("decoding: %s", err)
	}
	expect := map[string]interface{}{
		"i":   int64(3),
		"f":   float64(3.0),
		"big": int64(9007199254740993),
		"arr": []interface{}{int64(1), float64(2.5)},
	}
	if d := cmp.Diff(expect, v); d != "" {
		t.Errorf("decoded value mismatch (-want +got):\n%s", d)
	}
}
