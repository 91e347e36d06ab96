package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyType is returned for a blank declared type or an empty <> tag
	ErrEmptyType = errors.New("empty type")
	// ErrUnbalanced is returned when a wrapper is opened but not closed
	ErrUnbalanced = errors.New("unbalanced wrapper")
	// ErrEmptyEnum is returned for enum[] or an enum with a blank label
	ErrEmptyEnum = errors.New("empty enum label")
	// ErrUnknownWrapper is returned for wrappers other than list<> and enum[]
	ErrUnknownWrapper = errors.New("unknown wrapper")
)

// ParseError reports which declared type failed to parse and why
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse type %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const (
	listOpen  = "list<"
	enumOpen  = "enum["
	delimiter = "|"
	// a trailing * marks the default label; it carries no type information
	defaultMarker = "*"
)

// Parse parses a declared option type such as <blknum>, list<addr> or
// enum[json|csv|txt] into a Type
func Parse(input string) (*Type, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(input, defaultMarker, ""))
	t, err := parse(cleaned)
	if err != nil {
		return nil, &ParseError{Input: input, Err: err}
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(input string) *Type {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}

func parse(s string) (*Type, error) {
	if s == "" {
		return nil, ErrEmptyType
	}

	switch {
	case strings.HasPrefix(s, listOpen):
		if !strings.HasSuffix(s, ">") {
			return nil, fmt.Errorf("%w: %s missing >", ErrUnbalanced, listOpen)
		}
		inner := strings.TrimSpace(s[len(listOpen) : len(s)-1])
		elem, err := parse(inner)
		if err != nil {
			return nil, err
		}
		return &Type{Kind: List, Elem: elem}, nil

	case strings.HasPrefix(s, enumOpen):
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("%w: %s missing ]", ErrUnbalanced, enumOpen)
		}
		return parseEnum(s[len(enumOpen) : len(s)-1])

	case strings.HasPrefix(s, "<"):
		if !strings.HasSuffix(s, ">") {
			return nil, fmt.Errorf("%w: < missing >", ErrUnbalanced)
		}
		return parseTag(s[1 : len(s)-1])

	default:
		return parseTag(s)
	}
}

func parseEnum(payload string) (*Type, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, ErrEmptyEnum
	}
	parts := strings.Split(payload, delimiter)
	labels := make([]string, 0, len(parts))
	for i, part := range parts {
		label := strings.TrimSpace(part)
		if label == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyEnum, i)
		}
		if strings.ContainsAny(label, "<>[]") {
			return nil, fmt.Errorf("%w: label %q", ErrUnbalanced, label)
		}
		labels = append(labels, label)
	}
	return &Type{Kind: Enum, Labels: labels}, nil
}

func parseTag(name string) (*Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyType
	}
	if i := strings.IndexAny(name, "<["); i >= 0 {
		// something like map<...> or set[...]
		return nil, fmt.Errorf("%w: %s", ErrUnknownWrapper, name[:i+1])
	}
	if strings.ContainsAny(name, ">]|") {
		return nil, fmt.Errorf("%w: %s", ErrUnbalanced, name)
	}
	return &Type{Kind: Scalar, Name: name}, nil
}
