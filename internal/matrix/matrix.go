// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matrix reads a labeled transition matrix from CSV. The first header
// column labels each row; the remaining columns name the states. Cell values
// are kept as raw text.
package matrix

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/A1-3x/Markov-viz/pkg/types"
)

var (
	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("input has no header row")

	// ErrDuplicateState is returned when a header name appears more than once.
	ErrDuplicateState = errors.New("duplicate column name in header")
)

// utf8BOM is stripped from the start of the input if present.
var utf8BOM = []byte("\xef\xbb\xbf")

// ReadFile opens path and reads a Matrix from it.
func ReadFile(path string) (types.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Matrix{}, fmt.Errorf("opening input %s: %w", path, err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return types.Matrix{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return m, nil
}

// Read parses CSV from r. Every data row must have exactly as many fields as
// the header; a short or long row fails the whole read. Stray quotes inside
// fields are accepted and kept in the raw value.
func Read(r io.Reader) (types.Matrix, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	// FieldsPerRecord of zero pins every row to the header's field count.
	reader.FieldsPerRecord = 0
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return types.Matrix{}, ErrEmptyInput
	}
	if err != nil {
		return types.Matrix{}, fmt.Errorf("reading header: %w", err)
	}

	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return types.Matrix{}, fmt.Errorf("%w: %q", ErrDuplicateState, name)
		}
		seen[name] = true
	}

	m := types.Matrix{
		LabelColumn: header[0],
		States:      make([]string, len(header)-1),
		Records:     []types.Record{},
	}
	copy(m.States, header[1:])

	rowNum := 1 // header already counted
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return types.Matrix{}, fmt.Errorf("reading row %d: %w", rowNum, err)
		}
		m.Records = append(m.Records, types.Record{
			Label:  row[0],
			Values: row[1:],
		})
	}
	return m, nil
}
