// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the reader, renderer, store,
// and CLI: a labeled transition matrix and the stage configurations.
package types

// DefaultLabelColumn is the conventional name of the first header column.
const DefaultLabelColumn = "From"

// Record is one data row of a transition matrix. Values[i] holds the raw cell
// text for the i-th state of the owning Matrix, exactly as it appeared in the
// source file.
type Record struct {
	// Label identifies the row's source state (the first column).
	Label string `json:"label" yaml:"label"`

	// Values holds one raw value per state, in header order.
	Values []string `json:"values" yaml:"values"`
}

// Matrix is a labeled table read from a CSV header and its data rows.
type Matrix struct {
	// LabelColumn is the first header name (conventionally "From").
	LabelColumn string `json:"label_column" yaml:"label_column"`

	// States lists the remaining header names in order.
	States []string `json:"states" yaml:"states"`

	// Records holds the data rows in file order.
	Records []Record `json:"records" yaml:"records"`
}

// Header returns the full header row: the label column followed by the states.
func (m Matrix) Header() []string {
	h := make([]string, 0, len(m.States)+1)
	h = append(h, m.LabelColumn)
	return append(h, m.States...)
}
