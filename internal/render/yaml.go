// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/A1-3x/Markov-viz/pkg/types"
)

// YAML renders m as a single-key document mapping varName to a sequence of
// records. Node trees keep field order: From first, then states in header
// order. Values become plain scalars holding the raw cell text.
func YAML(m types.Matrix, varName string) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range m.Records {
		obj := &yaml.Node{Kind: yaml.MappingNode}
		obj.Content = append(obj.Content,
			strNode(labelKey), strNode(rec.Label))
		for i, state := range m.States {
			obj.Content = append(obj.Content,
				strNode(state), rawNode(rec.Values[i]))
		}
		seq.Content = append(seq.Content, obj)
	}

	doc := &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{{
			Kind:    yaml.MappingNode,
			Content: []*yaml.Node{strNode(varNameOrDefault(varName)), seq},
		}},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// strNode is a string scalar; the encoder quotes it when the text would
// otherwise resolve to another type.
func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// rawNode is an untagged scalar so the consumer resolves the raw cell text
// the same way a JS parser would resolve a bare literal.
func rawNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}
