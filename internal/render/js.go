// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"

	"github.com/A1-3x/Markov-viz/pkg/types"
)

// JS renders m as
//
//	const <varName> = [
//	    {From: "<label>", "<state>": <value>, ...},
//	    ...
//	];
//
// with a trailing newline. Labels and state names are quoted as JS string
// literals; values are copied as-is, so a value that is not valid JS makes
// the declaration invalid.
func JS(m types.Matrix, varName string) string {
	objs := make([]string, len(m.Records))
	for i, rec := range m.Records {
		objs[i] = indent + jsObject(m.States, rec)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "const %s = [\n", varNameOrDefault(varName))
	b.WriteString(strings.Join(objs, ",\n"))
	b.WriteString("\n];\n")
	return b.String()
}

func jsObject(states []string, rec types.Record) string {
	fields := make([]string, 0, len(states)+1)
	fields = append(fields, labelKey+": "+quoteJS(rec.Label))
	for i, state := range states {
		fields = append(fields, quoteJS(state)+": "+rec.Values[i])
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

// quoteJS returns s as a double-quoted JS string literal. Only backslash,
// double quote, and control characters are escaped, so ordinary labels come
// out unchanged between the quotes.
func quoteJS(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
