package schema

import "strings"

// Kind identifies the shape of a declared option type
type Kind int

const (
	// Scalar is a bare tag such as <blknum>, <address> or string
	Scalar Kind = iota
	// List wraps another type: list<T>
	List
	// Enum is a pipe-delimited label set: enum[a|b|c]
	Enum
)

func (k Kind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case List:
		return "list"
	case Enum:
		return "enum"
	default:
		return "unknown"
	}
}

// Type is a parsed declared type
type Type struct {
	Kind Kind `json:"kind"`

	// Name is the tag of a Scalar (without angle brackets)
	Name string `json:"name,omitempty"`

	// Elem is the wrapped type of a List
	Elem *Type `json:"elem,omitempty"`

	// Labels are the options of an Enum, in declaration order
	Labels []string `json:"labels,omitempty"`
}

// IsEnum reports whether the type is an enum, directly or inside a list
func (t *Type) IsEnum() bool {
	return t.Leaf().Kind == Enum
}

// Leaf returns the innermost non-list type
func (t *Type) Leaf() *Type {
	cur := t
	for cur.Kind == List && cur.Elem != nil {
		cur = cur.Elem
	}
	return cur
}

// IsListOf reports whether the type is list<name> for a scalar name
func (t *Type) IsListOf(name string) bool {
	return t.Kind == List && t.Elem != nil && t.Elem.Kind == Scalar && t.Elem.Name == name
}

// IsScalar reports whether the type is one of the given scalar tags
func (t *Type) IsScalar(names ...string) bool {
	if t.Kind != Scalar {
		return false
	}
	for _, n := range names {
		if t.Name == n {
			return true
		}
	}
	return false
}

// String renders the type in canonical declared form
func (t *Type) String() string {
	switch t.Kind {
	case List:
		if t.Elem == nil {
			return "list<>"
		}
		return "list<" + t.Elem.String() + ">"
	case Enum:
		return "enum[" + strings.Join(t.Labels, "|") + "]"
	default:
		return "<" + t.Name + ">"
	}
}
