// Command json-diff compares two JSON (or YAML) documents and prints the
// edit script turning the first into the second.
//
// Modes:
//   - default        : print the minimal RFC 6902 patch as JSON
//   - -test-ops      : include test operations so the patch stays invertible
//   - -pretty        : print a human-readable report, colored on a terminal
//   - -apply <file>  : apply the computed patch to a third document instead
//
// The -cheap flag switches to the linear-time diff strategy, which is the
// right choice for very large, heavily reordered arrays.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	jsondiff "github.com/Lattyware/go-json-diff"
)

func main() {
	var (
		cheap    = flag.Bool("cheap", false, "use the linear-time diff strategy")
		countW   = flag.Bool("count-weight", false, "select edits by operation count instead of encoded size")
		pretty   = flag.Bool("pretty", false, "print a human-readable report instead of a JSON patch")
		yamlIn   = flag.Bool("yaml", false, "decode inputs as YAML instead of JSON")
		invert   = flag.Bool("invert", false, "print the inverse patch")
		testOps  = flag.Bool("test-ops", false, "emit test operations so the patch stays invertible")
		stats    = flag.Bool("stats", false, "print a one-line change summary on stderr")
		applyDoc = flag.String("apply", "", "apply the computed patch to the given document and print the result")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: json-diff [flags] <old> <new>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	before, err := readDoc(flag.Arg(0), *yamlIn)
	if err != nil {
		fatal(err)
	}
	after, err := readDoc(flag.Arg(1), *yamlIn)
	if err != nil {
		fatal(err)
	}

	var patch jsondiff.Patch
	switch {
	case *cheap:
		patch = jsondiff.CheapDiff(before, after)
	case *countW:
		patch = jsondiff.DiffWithCustomWeight(before, after, jsondiff.OperationCount)
	default:
		patch = jsondiff.InvertibleDiff(before, after)
	}
	if *invert {
		patch = patch.Invert()
	}

	if *stats {
		fmt.Fprintln(os.Stderr, patch.Stats())
	}

	switch {
	case *applyDoc != "":
		doc, err := readDoc(*applyDoc, *yamlIn)
		if err != nil {
			fatal(err)
		}
		result, err := patch.Apply(doc)
		if err != nil {
			fatal(err)
		}
		printJSON(result)
	case *pretty:
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd())
		if err := jsondiff.FormatPretty(os.Stdout, patch, true); err != nil {
			fatal(err)
		}
	default:
		plain := patch.ToMinimalPatch()
		if *testOps {
			plain = patch.ToPatch()
		}
		printJSON(plain)
	}
}

func readDoc(path string, yamlIn bool) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if yamlIn {
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	v, err := jsondiff.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(data))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "json-diff:", err)
	os.Exit(1)
}
