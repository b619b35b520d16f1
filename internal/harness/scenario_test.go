package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTree = `kind: const
form: "1"
type: number
val: 1
is_literal: true
env: {ns: user, file: user.lpy, line: 1, col: 0, end_line: 1, end_col: 1}
`

// writeScenario writes a tree file and a scenario file into dir and returns
// the scenario path.
func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	trees := filepath.Join(dir, "trees")
	require.NoError(t, os.MkdirAll(trees, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(trees, "one.yaml"), []byte(testTree), 0644))

	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: one
description: "A single constant"
tree: trees/one.yaml
fallback: "1:0-1:1"
assertions:
  - type: kinds
    kinds: [const]
  - type: span
    span: "1:0-1:1"
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "one", scenario.Name)
	assert.Equal(t, "A single constant", scenario.Description)
	assert.Equal(t, filepath.Join(dir, "trees", "one.yaml"), scenario.Tree)
	assert.Equal(t, "1:0-1:1", scenario.Fallback)
	require.Len(t, scenario.Assertions, 2)
	assert.Equal(t, AssertKinds, scenario.Assertions[0].Type)
	assert.Equal(t, []string{"const"}, scenario.Assertions[0].Kinds)
}

func TestLoadScenario_AbsoluteTreePath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "trees", "one.yaml")
	path := writeScenario(t, dir, `
name: one
description: "Absolute tree path"
tree: `+abs+`
assertions:
  - type: count
    kind: const
    count: 1
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, abs, scenario.Tree)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: one
description: "Typo in assertions"
tree: trees/one.yaml
assertion:
  - type: kinds
    kinds: [const]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "missing name",
			content: `
description: "d"
tree: trees/one.yaml
assertions: [{type: count, kind: const, count: 1}]
`,
			want: "name is required",
		},
		{
			name: "missing description",
			content: `
name: n
tree: trees/one.yaml
assertions: [{type: count, kind: const, count: 1}]
`,
			want: "description is required",
		},
		{
			name: "missing tree",
			content: `
name: n
description: "d"
assertions: [{type: count, kind: const, count: 1}]
`,
			want: "tree is required",
		},
		{
			name: "tree not found",
			content: `
name: n
description: "d"
tree: trees/missing.yaml
assertions: [{type: count, kind: const, count: 1}]
`,
			want: "tree file not found",
		},
		{
			name: "bad fallback",
			content: `
name: n
description: "d"
tree: trees/one.yaml
fallback: "1:0"
assertions: [{type: count, kind: const, count: 1}]
`,
			want: "fallback",
		},
		{
			name: "no assertions",
			content: `
name: n
description: "d"
tree: trees/one.yaml
`,
			want: "assertions list is required",
		},
		{
			name: "missing type",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{kind: const}]
`,
			want: "assertions[0]: type is required",
		},
		{
			name: "unknown type",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: shape}]
`,
			want: `unknown assertion type "shape"`,
		},
		{
			name: "unknown kind in kinds",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: kinds, kinds: [lambda]}]
`,
			want: `unknown kind "lambda"`,
		},
		{
			name: "empty kinds",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: kinds}]
`,
			want: "kinds list is required",
		},
		{
			name: "bad span",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: span, span: "x"}]
`,
			want: "assertions[0]",
		},
		{
			name: "empty names",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: names}]
`,
			want: "names list is required",
		},
		{
			name: "unknown kind in count",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: count, kind: lambda, count: 1}]
`,
			want: `unknown kind "lambda" for count`,
		},
		{
			name: "negative count",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: count, kind: const, count: -1}]
`,
			want: "count must be non-negative",
		},
		{
			name: "fix_error without error",
			content: `
name: n
description: "d"
tree: trees/one.yaml
assertions: [{type: fix_error}]
`,
			want: "error is required for fix_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_Testdata(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := LoadScenario(path)
			require.NoError(t, err)
		})
	}
}
