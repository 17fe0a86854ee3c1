package jsondiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// FormatPrettyString is a convenience wrapper that renders to a string
// instead of an io.Writer.
func FormatPrettyString(p Patch, colorize bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, p, colorize); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a line-per-operation report to w, one line per
// operation:
// "+" for additions
// "-" for removals
// "~" for replacements
// ">" for moves
// With colorize the lines are tinted green, red, blue and cyan
// respectively. A replacement of one string by another is rendered as an
// inline character-level diff.
func FormatPretty(w io.Writer, p Patch, colorize bool) error {
	pal := newPalette(colorize)
	for _, op := range p {
		switch o := op.(type) {
		case Add:
			val, err := formatValue(o.Value)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, pal.add("+ "+label(o.Path)+": "+val))
		case Remove:
			val, err := formatValue(o.Value)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, pal.remove("- "+label(o.Path)+": "+val))
		case Replace:
			oldStr, oldOK := o.Old.(string)
			newStr, newOK := o.New.(string)
			if oldOK && newOK {
				fmt.Fprintln(w, pal.replace("~ "+label(o.Path)+": ")+inlineStringDiff(oldStr, newStr, pal))
				continue
			}
			oldVal, err := formatValue(o.Old)
			if err != nil {
				return err
			}
			newVal, err := formatValue(o.New)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, pal.replace("~ "+label(o.Path)+": "+oldVal+" => "+newVal))
		case Move:
			fmt.Fprintln(w, pal.move("> "+label(o.From)+" -> "+label(o.To)))
		}
	}
	return nil
}

type palette struct {
	add, remove, replace, move func(a ...interface{}) string
}

func newPalette(colorize bool) palette {
	if !colorize {
		return palette{add: fmt.Sprint, remove: fmt.Sprint, replace: fmt.Sprint, move: fmt.Sprint}
	}
	return palette{
		add:     color.New(color.FgGreen).SprintFunc(),
		remove:  color.New(color.FgRed).SprintFunc(),
		replace: color.New(color.FgBlue).SprintFunc(),
		move:    color.New(color.FgCyan).SprintFunc(),
	}
}

// inlineStringDiff renders old and new as one line, deletions colored as
// removals and insertions as additions.
func inlineStringDiff(old, new string, pal palette) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(old, new, false))
	b := &strings.Builder{}
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(pal.remove(d.Text))
		case diffmatchpatch.DiffInsert:
			b.WriteString(pal.add(d.Text))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func formatValue(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func label(p Pointer) string {
	if len(p) == 0 {
		return "/"
	}
	return p.String()
}
