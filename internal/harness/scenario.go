package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lispir/internal/ir"
)

// Scenario defines a tree conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tree is the path of the tree file (.yaml, .json or .cue).
	// LoadScenario resolves it relative to the scenario file.
	Tree string `yaml:"tree"`

	// Fallback is the span given to location repair, written
	// "line:col-endLine:endCol". Empty means no fallback.
	Fallback string `yaml:"fallback,omitempty"`

	// Assertions validate the repaired tree.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of a scenario's result.
type Assertion struct {
	// Type specifies the assertion type:
	// - "kinds": pre-order kinds of the subtree at Path
	// - "span": span of the node at Path
	// - "names": target names of the callable or type at Path
	// - "diagnostics": validation codes, in order
	// - "count": number of nodes of Kind
	// - "fix_error": location repair failed with an error containing Error
	Type string `yaml:"type"`

	// Path locates a node, as reported by ir.WalkPaths. Empty means the root.
	Path string `yaml:"path,omitempty"`

	// Kinds is the expected pre-order kind list (used by kinds).
	Kinds []string `yaml:"kinds,omitempty"`

	// Span is the expected span (used by span).
	Span string `yaml:"span,omitempty"`

	// Name is the source name of a function (used by names on fn nodes).
	Name string `yaml:"name,omitempty"`

	// Names are the expected target names (used by names).
	Names []string `yaml:"names,omitempty"`

	// Codes are the expected validation codes (used by diagnostics).
	Codes []string `yaml:"codes"`

	// Kind is the node kind to count (used by count).
	Kind string `yaml:"kind,omitempty"`

	// Count is the expected number of nodes (used by count).
	Count int `yaml:"count,omitempty"`

	// Error is a substring of the expected repair error (used by fix_error).
	Error string `yaml:"error,omitempty"`
}

// Assertion type constants.
const (
	AssertKinds       = "kinds"
	AssertSpan        = "span"
	AssertNames       = "names"
	AssertDiagnostics = "diagnostics"
	AssertCount       = "count"
	AssertFixError    = "fix_error"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Tree != "" && !filepath.IsAbs(scenario.Tree) {
		scenario.Tree = filepath.Join(filepath.Dir(path), scenario.Tree)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Tree == "" {
		return fmt.Errorf("tree is required")
	}
	if _, err := os.Stat(s.Tree); os.IsNotExist(err) {
		return fmt.Errorf("tree file not found: %s", s.Tree)
	}

	if s.Fallback != "" {
		if _, err := ir.ParseSpan(s.Fallback); err != nil {
			return fmt.Errorf("fallback: %w", err)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertKinds:
		if len(a.Kinds) == 0 {
			return fmt.Errorf("assertions[%d]: kinds list is required for kinds", index)
		}
		for _, k := range a.Kinds {
			if _, ok := ir.ParseKind(k); !ok {
				return fmt.Errorf("assertions[%d]: unknown kind %q", index, k)
			}
		}
	case AssertSpan:
		if _, err := ir.ParseSpan(a.Span); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertNames:
		if len(a.Names) == 0 {
			return fmt.Errorf("assertions[%d]: names list is required for names", index)
		}
	case AssertDiagnostics:
		// An empty list asserts a valid tree.
	case AssertCount:
		if _, ok := ir.ParseKind(a.Kind); !ok {
			return fmt.Errorf("assertions[%d]: unknown kind %q for count", index, a.Kind)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertFixError:
		if a.Error == "" {
			return fmt.Errorf("assertions[%d]: error is required for fix_error", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
