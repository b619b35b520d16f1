package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/lispir/internal/ir"
)

// Format is the serialization of a tree file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported tree format %q", s)
	}
}

// LoadFile reads and decodes the tree in path. The format is chosen by the
// file extension.
func LoadFile(path string) (ir.Node, error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tree file: %w", err)
	}
	return Load(data, format, path)
}

// Load decodes a tree from data. name is used in error positions.
func Load(data []byte, format Format, name string) (ir.Node, error) {
	v, err := parse(data, format, name)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

func parse(data []byte, format Format, name string) (any, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return v, nil
	case FormatCUE:
		return parseCUE(data, name)
	default:
		return nil, fmt.Errorf("unsupported tree format %q", format)
	}
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return v, nil
}

// parseCUE evaluates a CUE tree file. The file must be concrete; templates
// and defaults are resolved before decoding.
func parseCUE(data []byte, name string) (any, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if tree := v.LookupPath(cue.ParsePath("tree")); tree.Exists() {
		v = tree
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}
	return parseJSON(out)
}

// formatCUEError reports the first CUE error with its source position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := cueerrors.Positions(first)
	if len(positions) > 0 && positions[0].IsValid() {
		pos := positions[0]
		return &DecodeError{
			Path:    fmt.Sprintf("%s:%d:%d", pos.Filename(), pos.Line(), pos.Column()),
			Message: "invalid CUE tree",
			Err:     first,
		}
	}
	return &DecodeError{Path: "$", Message: "invalid CUE tree", Err: first}
}

// Encode renders n in format. JSON output is canonical: sorted keys and no
// insignificant whitespace. YAML output has sorted keys.
func Encode(n ir.Node, format Format) ([]byte, error) {
	m := ir.ToMap(n)
	switch format {
	case FormatJSON:
		return ir.MarshalCanonical(m)
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(ir.ToPlain(m)); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot encode tree as %q", format)
	}
}
