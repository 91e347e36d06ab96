package golang

import (
	"fmt"
	"strings"

	"github.com/okra-platform/sdkgen/internal/codegen/writer"
	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/schema"
)

// globalsField is embedded at the end of every options struct
const globalsField = "globals"

// Field is one generated struct field
type Field struct {
	Name   string
	Type   Resolved
	Option registry.Option
}

// ResolveFields parses and resolves every option of route. Enum specs get
// their planned suffix.
func ResolveFields(route string, opts []registry.Option, plan *Plan) ([]Field, error) {
	fields := make([]Field, 0, len(opts))
	for _, opt := range opts {
		t, err := schema.Parse(opt.DeclaredType)
		if err != nil {
			return nil, fmt.Errorf("option %s.%s: %w", route, opt.LongName, err)
		}

		name := FieldName(opt.LongName)
		resolved := ResolveType(route, name, t, opt.TypeHint)
		if resolved.Enum != nil && plan != nil {
			resolved.Enum.Suffix = plan.Suffix(opt)
		}
		fields = append(fields, Field{Name: name, Type: resolved, Option: opt})
	}
	return fields, nil
}

// AlignWidth is the column at which field types start: one past the
// longest field name
func AlignWidth(fields []Field) int {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Name)+1)
	}
	return width
}

// BuildFields renders the struct body and the enum declarations for route.
// Fields keep registry order; enums follow the order they were met in.
func BuildFields(route string, opts []registry.Option, plan *Plan) (fieldsBlock, enumsBlock string, err error) {
	fields, err := ResolveFields(route, opts, plan)
	if err != nil {
		return "", "", err
	}

	width := AlignWidth(fields)
	w := writer.New("\t")
	w.Indent()

	var enums strings.Builder
	for _, f := range fields {
		w.WritePadded(f.Name+" ", width)
		w.WriteLine(f.Type.String())
		if f.Type.Enum != nil {
			enums.WriteString(SynthesizeEnum(f.Type.Enum))
			enums.WriteString("\n")
		}
	}
	w.WriteLine(ProperCase(globalsField))
	w.Newline()

	return w.String(), enums.String(), nil
}
