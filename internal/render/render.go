// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a transition matrix into a literal data structure for
// consumption by other tools: a JavaScript const declaration or a YAML
// document. Cell values are emitted verbatim and never reformatted.
package render

import (
	"fmt"

	"github.com/A1-3x/Markov-viz/pkg/types"
)

// labelKey is the field name every rendered record starts with, independent
// of the input's label column name.
const labelKey = "From"

// indent prefixes every rendered record in the JS output.
const indent = "    "

// Render dispatches on cfg.Format and returns the document bytes.
func Render(m types.Matrix, cfg types.RenderConfig) ([]byte, error) {
	switch cfg.Format {
	case types.OutputJS, "":
		return []byte(JS(m, cfg.VarName)), nil
	case types.OutputYAML:
		return YAML(m, cfg.VarName)
	default:
		return nil, fmt.Errorf("unknown output format %q (want js or yaml)", cfg.Format)
	}
}

// FormatName returns a human-readable name for f, used in confirmation lines.
func FormatName(f types.OutputFormat) string {
	switch f {
	case types.OutputYAML:
		return "YAML"
	default:
		return "JavaScript"
	}
}

func varNameOrDefault(name string) string {
	if name == "" {
		return types.DefaultVarName
	}
	return name
}
