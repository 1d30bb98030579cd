// Package document defines the generic key-value document shape consumed by
// the construction pipeline. The core only depends on Node; yamlNode is the
// concrete implementation backed by gopkg.in/yaml.v3, which also accepts JSON.
package document

import (
	"errors"
	"fmt"
)

// Kind classifies a document node.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "null"
	}
}

var (
	ErrNotScalar   = errors.New("document: node is not a scalar")
	ErrNotSequence = errors.New("document: node is not a sequence")
	ErrNotMapping  = errors.New("document: node is not a mapping")
)

// Node is one element of a parsed document.
type Node interface {
	Kind() Kind
	IsScalar() bool
	IsSequence() bool
	IsMapping() bool

	// String returns the raw scalar text.
	String() (string, error)
	// Float parses the scalar as a number.
	Float() (float64, error)
	// Elements returns sequence items. Nil for non-sequences.
	Elements() []Node
	// Pairs returns mapping entries in document order. Nil for non-mappings.
	Pairs() []Pair
	// Get looks up a mapping key.
	Get(key string) (Node, bool)
	// Decode unmarshals the node into v using yaml struct tags.
	Decode(v any) error
	// Line is the 1-based source line, 0 when unknown.
	Line() int
}

// Pair is one mapping entry.
type Pair struct {
	Key   string
	Value Node
}

// Floats reads a numeric sequence of exactly n elements.
func Floats(n Node, want int) ([]float64, error) {
	if !n.IsSequence() {
		return nil, fmt.Errorf("line %d: %w", n.Line(), ErrNotSequence)
	}
	elems := n.Elements()
	if len(elems) != want {
		return nil, fmt.Errorf("line %d: expected %d numbers, got %d", n.Line(), want, len(elems))
	}
	out := make([]float64, want)
	for i, e := range elems {
		f, err := e.Float()
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// StringOf returns the scalar text of key in mapping n, or "" when absent or not a scalar.
func StringOf(n Node, key string) string {
	v, ok := n.Get(key)
	if !ok || !v.IsScalar() {
		return ""
	}
	s, _ := v.String()
	return s
}
