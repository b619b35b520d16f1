package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lispir/internal/ir"
)

// Outline renders a tree one node per line: path, kind and span, or "-"
// for a node without a complete span.
func Outline(n ir.Node) string {
	var buf strings.Builder
	ir.WalkPaths(n, func(path string, c ir.Node) bool {
		span := "-"
		if s, ok := c.Env().Span(); ok {
			span = s.String()
		}
		fmt.Fprintf(&buf, "%s %s %s\n", path, c.Kind(), span)
		return true
	})
	return buf.String()
}

// Snapshot renders everything a golden file pins down for a result.
func Snapshot(name string, result *Result) []byte {
	var buf strings.Builder
	fmt.Fprintf(&buf, "scenario: %s\n", name)
	fmt.Fprintf(&buf, "seq: %d\n", result.Seq)
	if result.FixError != "" {
		fmt.Fprintf(&buf, "fix error: %s\n", result.FixError)
	}
	buf.WriteString("\ntree:\n")
	buf.WriteString(Outline(result.Tree))
	buf.WriteString("\ndiagnostics:\n")
	for _, d := range result.Diagnostics {
		fmt.Fprintf(&buf, "%s\n", d.Error())
	}
	return []byte(buf.String())
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, Snapshot(name, result))
}
