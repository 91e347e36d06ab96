package golang

import (
	"strings"

	"github.com/okra-platform/sdkgen/internal/schema"
)

// Canonical SDK types for the domain tags
const (
	BlknumType  = "base.Blknum"
	AddressType = "base.Address"
	TopicType   = "base.Topic"
	StringsType = "[]string"
)

const (
	addressMarker = "address"
	topicMarker   = "topic"
)

// Resolved is the Go side of one option field
type Resolved struct {
	Expr    string
	Comment string

	// Enum is set when the field's type is a synthesized enum
	Enum *EnumSpec
}

// String renders the type expression with its trailing comment, if any
func (r Resolved) String() string {
	if r.Comment == "" {
		return r.Expr
	}
	return r.Expr + " // " + r.Comment
}

// ResolveType maps a declared type to the Go type of field on route.
// The first matching rule wins; anything unrecognised uses hint verbatim.
func ResolveType(route, field string, t *schema.Type, hint string) Resolved {
	switch {
	case t.IsScalar("blknum", "txnum"):
		return Resolved{Expr: BlknumType}
	case t.IsListOf("addr"):
		return Resolved{Expr: StringsType, Comment: "allow for ENS names and addresses"}
	case t.IsListOf("blknum"):
		return Resolved{Expr: StringsType, Comment: "allow for block ranges and steps"}
	case t.IsListOf("topic"):
		return Resolved{Expr: StringsType, Comment: "topics are strings"}
	case t.IsEnum():
		spec := &EnumSpec{
			TypeName: EnumTypeName(route, field),
			Prefix:   EnumPrefix(route, field),
			Labels:   t.Leaf().Labels,
		}
		return Resolved{Expr: spec.TypeName, Enum: spec}
	case leafContains(t, addressMarker):
		return Resolved{Expr: AddressType}
	case leafContains(t, topicMarker):
		return Resolved{Expr: TopicType}
	default:
		return Resolved{Expr: hint}
	}
}

func leafContains(t *schema.Type, marker string) bool {
	leaf := t.Leaf()
	return leaf.Kind == schema.Scalar && strings.Contains(leaf.Name, marker)
}
