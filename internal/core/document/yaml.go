package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

type yamlNode struct {
	n *yaml.Node
}

var _ Node = yamlNode{}

// Parse decodes a single YAML or JSON document.
func Parse(data []byte) (Node, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return yamlNode{}, nil
		}
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return FromYAML(&root), nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(src string) Node {
	n, err := Parse([]byte(src))
	if err != nil {
		panic(err)
	}
	return n
}

// FromYAML wraps a yaml.v3 node, unwrapping document and alias nodes.
func FromYAML(n *yaml.Node) Node {
	return yamlNode{n: resolve(n)}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func (y yamlNode) Kind() Kind {
	if y.n == nil {
		return KindNull
	}
	switch y.n.Kind {
	case yaml.ScalarNode:
		if y.n.Tag == "!!null" {
			return KindNull
		}
		return KindScalar
	case yaml.SequenceNode:
		return KindSequence
	case yaml.MappingNode:
		return KindMapping
	default:
		return KindNull
	}
}

func (y yamlNode) IsScalar() bool   { return y.Kind() == KindScalar }
func (y yamlNode) IsSequence() bool { return y.Kind() == KindSequence }
func (y yamlNode) IsMapping() bool  { return y.Kind() == KindMapping }

func (y yamlNode) String() (string, error) {
	if !y.IsScalar() {
		return "", fmt.Errorf("line %d: %w", y.Line(), ErrNotScalar)
	}
	return y.n.Value, nil
}

func (y yamlNode) Float() (float64, error) {
	s, err := y.String()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %q is not a number", y.Line(), s)
	}
	return f, nil
}

func (y yamlNode) Elements() []Node {
	if !y.IsSequence() {
		return nil
	}
	out := make([]Node, len(y.n.Content))
	for i, c := range y.n.Content {
		out[i] = FromYAML(c)
	}
	return out
}

func (y yamlNode) Pairs() []Pair {
	if !y.IsMapping() {
		return nil
	}
	out := make([]Pair, 0, len(y.n.Content)/2)
	for i := 0; i+1 < len(y.n.Content); i += 2 {
		out = append(out, Pair{Key: y.n.Content[i].Value, Value: FromYAML(y.n.Content[i+1])})
	}
	return out
}

func (y yamlNode) Get(key string) (Node, bool) {
	if !y.IsMapping() {
		return nil, false
	}
	for i := 0; i+1 < len(y.n.Content); i += 2 {
		if y.n.Content[i].Value == key {
			return FromYAML(y.n.Content[i+1]), true
		}
	}
	return nil, false
}

func (y yamlNode) Decode(v any) error {
	if y.n == nil {
		return nil
	}
	if err := y.n.Decode(v); err != nil {
		return fmt.Errorf("line %d: %w", y.Line(), err)
	}
	return nil
}

func (y yamlNode) Line() int {
	if y.n == nil {
		return 0
	}
	return y.n.Line
}
