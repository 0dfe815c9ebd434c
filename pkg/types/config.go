// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects the text format the converter writes.
type OutputFormat string

const (
	OutputJS   OutputFormat = "js"
	OutputYAML OutputFormat = "yaml"
)

// Defaults for the converter. Running with an empty configuration reproduces
// the original fixed file names.
const (
	DefaultInputPath  = "transition_matrix_Q.csv"
	DefaultOutputPath = "transition_data.js"
	DefaultYAMLOutput = "transition_data.yaml"
	DefaultVarName    = "transitionData"
	DefaultStorePath  = "matrices.db"
)

// RenderConfig holds settings for rendering a matrix as text.
type RenderConfig struct {
	// VarName is the identifier the records are assigned to (default "transitionData").
	VarName string `json:"var_name" yaml:"var_name"`

	// Format selects the output format: js or yaml.
	Format OutputFormat `json:"format" yaml:"format"`
}

// StoreConfig holds settings for the SQLite matrix store.
type StoreConfig struct {
	// Path is the SQLite database file (default "matrices.db").
	Path string `json:"db" yaml:"db"`
}

// ConvertConfig holds settings for a single conversion run.
type ConvertConfig struct {
	RenderConfig `yaml:",inline"`

	// InputPath is the CSV file to read (default "transition_matrix_Q.csv").
	InputPath string `json:"input" yaml:"input"`

	// OutputPath is the file to write, overwritten if it exists
	// (default "transition_data.js", or "transition_data.yaml" for yaml).
	OutputPath string `json:"output" yaml:"output"`

	// Matrix, when set, names a stored matrix to convert instead of reading
	// InputPath. Store.Path locates the database.
	Matrix string `json:"matrix,omitempty" yaml:"matrix,omitempty"`

	Store StoreConfig `json:"store" yaml:"store"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
func (c ConvertConfig) WithDefaults() ConvertConfig {
	if c.InputPath == "" {
		c.InputPath = DefaultInputPath
	}
	if c.Format == "" {
		c.Format = OutputJS
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
		if c.Format == OutputYAML {
			c.OutputPath = DefaultYAMLOutput
		}
	}
	if c.VarName == "" {
		c.VarName = DefaultVarName
	}
	if c.Store.Path == "" {
		c.Store.Path = DefaultStorePath
	}
	return c
}
