// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/A1-3x/Markov-viz/pkg/types"
)

const sampleCSV = "From,A,B\nA,0.1,0.9\nB,0.8,0.2\n"

const sampleJS = `const transitionData = [
    {From: "A", "A": 0.1, "B": 0.9},
    {From: "B", "A": 0.8, "B": 0.2}
];
`

// fakeLoader implements Loader for testing.
type fakeLoader struct {
	matrices map[string]types.Matrix
}

func (f *fakeLoader) Load(ctx context.Context, name string) (types.Matrix, error) {
	m, ok := f.matrices[name]
	if !ok {
		return types.Matrix{}, errors.New("no such matrix")
	}
	return m, nil
}

// setupInput writes content to a CSV in a temp dir and returns the config
// pointing at it along with the dir.
func setupInput(t *testing.T, content string) (types.ConvertConfig, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, types.DefaultInputPath)
	require.NoError(t, os.WriteFile(in, []byte(content), 0o644))
	return types.ConvertConfig{
		InputPath:  in,
		OutputPath: filepath.Join(dir, types.DefaultOutputPath),
	}, dir
}

func TestRunFile(t *testing.T) {
	cfg, _ := setupInput(t, sampleCSV)
	var log bytes.Buffer

	res, err := RunFile(cfg, &log)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, sampleJS, string(data))
	assert.Equal(t, "JavaScript data written to "+cfg.OutputPath+"\n", log.String())
	assert.Equal(t, Result{OutputPath: cfg.OutputPath, Records: 2, States: 2, Bytes: len(sampleJS)}, res)
}

func TestRunFile_DefaultPaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(types.DefaultInputPath, []byte(sampleCSV), 0o644))

	var log bytes.Buffer
	_, err := RunFile(types.ConvertConfig{}, &log)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, types.DefaultOutputPath))
	require.NoError(t, err)
	assert.Equal(t, sampleJS, string(data))
	assert.Equal(t, "JavaScript data written to transition_data.js\n", log.String())
}

func TestRunFile_Degenerate(t *testing.T) {
	cfg, _ := setupInput(t, "From\nA\n")
	_, err := RunFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "const transitionData = [\n    {From: \"A\"}\n];\n", string(data))
}

func TestRunFile_Idempotent(t *testing.T) {
	cfg, _ := setupInput(t, sampleCSV)

	_, err := RunFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	_, err = RunFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunFile_OverwritesExisting(t *testing.T) {
	cfg, _ := setupInput(t, sampleCSV)
	require.NoError(t, os.WriteFile(cfg.OutputPath, bytes.Repeat([]byte("x"), 4096), 0o644))

	_, err := RunFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, sampleJS, string(data))
}

func TestRunFile_Failures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		noInput bool
		wantErr error
	}{
		{name: "missing input", noInput: true, wantErr: os.ErrNotExist},
		{name: "short row", input: "From,A,B\nA,0.1\n", wantErr: csv.ErrFieldCount},
		{name: "long row", input: "From,A\nA,0.1,0.9\n", wantErr: csv.ErrFieldCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, dir := setupInput(t, tt.input)
			if tt.noInput {
				require.NoError(t, os.Remove(cfg.InputPath))
			}

			// Existing output must survive a failed read.
			const previous = "previous output"
			require.NoError(t, os.WriteFile(cfg.OutputPath, []byte(previous), 0o644))

			var log bytes.Buffer
			_, err := RunFile(cfg, &log)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, log.String())

			data, err := os.ReadFile(filepath.Join(dir, types.DefaultOutputPath))
			require.NoError(t, err)
			assert.Equal(t, previous, string(data))
		})
	}
}

func TestRunFile_NoOutputOnFailure(t *testing.T) {
	cfg, _ := setupInput(t, "From,A,B\nA,0.1,0.9\nB,0.8\n")

	_, err := RunFile(cfg, &bytes.Buffer{})
	require.Error(t, err)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "output file should not be created")
}

func TestRunFile_UnwritableOutput(t *testing.T) {
	cfg, dir := setupInput(t, sampleCSV)
	cfg.OutputPath = filepath.Join(dir, "missing-dir", "out.js")

	var log bytes.Buffer
	_, err := RunFile(cfg, &log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing output")
	assert.Empty(t, log.String())
}

func TestRun_YAML(t *testing.T) {
	cfg, dir := setupInput(t, sampleCSV)
	cfg.Format = types.OutputYAML
	cfg.OutputPath = filepath.Join(dir, "transition_data.yaml")

	var log bytes.Buffer
	_, err := Run(context.Background(), CSVSource{Path: cfg.InputPath}, cfg, &log)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transitionData:")
	assert.Contains(t, string(data), "From: A")
	assert.Equal(t, "YAML data written to "+cfg.OutputPath+"\n", log.String())
}

func TestRun_StoredSource(t *testing.T) {
	dir := t.TempDir()
	loader := &fakeLoader{matrices: map[string]types.Matrix{
		"Q": {
			LabelColumn: "From",
			States:      []string{"A", "B"},
			Records: []types.Record{
				{Label: "A", Values: []string{"0.1", "0.9"}},
				{Label: "B", Values: []string{"0.8", "0.2"}},
			},
		},
	}}
	cfg := types.ConvertConfig{OutputPath: filepath.Join(dir, "out.js")}

	_, err := Run(context.Background(), StoredSource{Loader: loader, Name: "Q"}, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, sampleJS, string(data))

	_, err = Run(context.Background(), StoredSource{Loader: loader, Name: "missing"}, cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `loading matrix "missing"`)
}

func TestRun_CustomVarName(t *testing.T) {
	cfg, _ := setupInput(t, "From,A\nA,1\n")
	cfg.VarName = "qMatrix"

	_, err := RunFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)
	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "const qMatrix = [\n    {From: \"A\", \"A\": 1}\n];\n", string(data))
}

func TestRunFile_StrayQuotes(t *testing.T) {
	cfg, _ := setupInput(t, "From,A\n5\",0\"1\n")

	_, err := RunFile(cfg, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "const transitionData = [\n    {From: \"5\\\"\", \"A\": 0\"1}\n];\n", string(data))
}

func TestRunFile_YAMLDefaultOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(types.DefaultInputPath, []byte(sampleCSV), 0o644))

	var log bytes.Buffer
	cfg := types.ConvertConfig{RenderConfig: types.RenderConfig{Format: types.OutputYAML}}
	_, err := RunFile(cfg, &log)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "transition_data.yaml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, types.DefaultOutputPath))
	assert.True(t, os.IsNotExist(err), "js output must not be written for yaml format")
	assert.Equal(t, "YAML data written to transition_data.yaml\n", log.String())
}
