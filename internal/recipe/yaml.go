package recipe

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Steps []yaml.Node `yaml:"steps"`
}

// DecodeYAML reads a recipe document:
//
//	steps:
//	  - {action: 120, task: 3}
//	  - {action: 10, step_duration: 2}
//	  - ~              # null step
//	  - {action: 130, comment: ~}
func DecodeYAML(r io.Reader, schema Schema) (Recipe, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Recipe{}, fmt.Errorf("decode yaml: %w", err)
	}

	steps := make([]*Step, 0, len(doc.Steps))
	for i := range doc.Steps {
		node := &doc.Steps[i]
		if isNull(node) {
			steps = append(steps, nil)
			continue
		}
		if node.Kind != yaml.MappingNode {
			return Recipe{}, fmt.Errorf("step %d (line %d): expected a mapping", i, node.Line)
		}

		cells := make([]cell, 0, len(node.Content)/2)
		for j := 0; j+1 < len(node.Content); j += 2 {
			key, val := node.Content[j], node.Content[j+1]
			if val.Kind != yaml.ScalarNode {
				return Recipe{}, fmt.Errorf("step %d (line %d): column %q must be a scalar", i, val.Line, key.Value)
			}
			cells = append(cells, cell{col: ColumnID(key.Value), raw: val.Value, null: isNull(val)})
		}

		step, err := buildStep(schema, cells)
		if err != nil {
			return Recipe{}, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return Recipe{steps: steps}, nil
}

// EncodeYAML writes a recipe in the format read by DecodeYAML. Deploy
// markers matching the schema default are left implicit.
func EncodeYAML(w io.Writer, r Recipe, schema Schema) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range r.steps {
		if s == nil {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"})
			continue
		}
		m := &yaml.Node{Kind: yaml.MappingNode, Style: yaml.FlowStyle}
		for _, c := range encodeCells(s, schema) {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(c.col)}
			m.Content = append(m.Content, key, scalarNode(s, c))
		}
		seq.Content = append(seq.Content, m)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "steps"},
		seq,
	}}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// scalarNode leaves readable numbers untagged so the emitter writes them
// plain; other text is tagged as a string and quoted where needed.
func scalarNode(s *Step, c cell) *yaml.Node {
	if c.null {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}
	}
	tag := "!!str"
	if p, ok := s.properties[c.col]; ok && p != nil && p.raw == normalizeNumber(p.raw) {
		switch p.typ {
		case PropertyInt16:
			if _, err := p.Int16(); err == nil {
				tag = ""
			}
		case PropertyFloat:
			if _, err := p.Float(); err == nil {
				tag = ""
			}
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: c.raw}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
