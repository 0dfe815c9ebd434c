// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns a transition matrix into a literal data file. A run
// reads the whole matrix, renders it, overwrites the output file, and prints
// one confirmation line.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/A1-3x/Markov-viz/internal/matrix"
	"github.com/A1-3x/Markov-viz/internal/render"
	"github.com/A1-3x/Markov-viz/pkg/types"
)

// Source supplies the matrix to convert. The CSV reader and the SQLite store
// both implement it.
type Source interface {
	// Matrix returns the full matrix, or an error if it cannot be read.
	Matrix(ctx context.Context) (types.Matrix, error)
}

// CSVSource reads the matrix from a CSV file.
type CSVSource struct {
	Path string
}

// Matrix reads and parses the CSV file at s.Path.
func (s CSVSource) Matrix(ctx context.Context) (types.Matrix, error) {
	return matrix.ReadFile(s.Path)
}

// Loader loads a named matrix. *store.Store satisfies it.
type Loader interface {
	Load(ctx context.Context, name string) (types.Matrix, error)
}

// StoredSource reads a named matrix from a Loader.
type StoredSource struct {
	Loader Loader
	Name   string
}

// Matrix loads the matrix named s.Name.
func (s StoredSource) Matrix(ctx context.Context) (types.Matrix, error) {
	m, err := s.Loader.Load(ctx, s.Name)
	if err != nil {
		return types.Matrix{}, fmt.Errorf("loading matrix %q: %w", s.Name, err)
	}
	return m, nil
}

// Result describes a completed conversion.
type Result struct {
	OutputPath string
	Records    int
	States     int
	Bytes      int
}

// Run converts the matrix from src according to cfg and writes the
// confirmation line to w. The output file is only opened once the matrix has
// been read and rendered, so an input failure leaves any existing output
// untouched.
func Run(ctx context.Context, src Source, cfg types.ConvertConfig, w io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()

	m, err := src.Matrix(ctx)
	if err != nil {
		return Result{}, err
	}

	data, err := render.Render(m, cfg.RenderConfig)
	if err != nil {
		return Result{}, err
	}

	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("writing output %s: %w", cfg.OutputPath, err)
	}

	fmt.Fprintf(w, "%s data written to %s\n", render.FormatName(cfg.Format), cfg.OutputPath)
	return Result{
		OutputPath: cfg.OutputPath,
		Records:    len(m.Records),
		States:     len(m.States),
		Bytes:      len(data),
	}, nil
}

// RunFile converts the CSV file named by cfg.InputPath. It is the default
// conversion: with a zero cfg it reads transition_matrix_Q.csv and writes
// transition_data.js.
func RunFile(cfg types.ConvertConfig, w io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()
	return Run(context.Background(), CSVSource{Path: cfg.InputPath}, cfg, w)
}
