package golang

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// fieldRenames keep option fields apart from the collection-typed fields
// of the same name elsewhere in the SDK
var fieldRenames = map[string]string{
	"Blocks":       "BlockIds",
	"Transactions": "TransactionIds",
}

// ReservedPackageNames are lower-cased route names that cannot be used as
// a Go package identifier as-is
var ReservedPackageNames = map[string]bool{
	"init": true,
	"main": true,

	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// reservedSuffix is appended to reserved package names
const reservedSuffix = "Pkg"

// ProperCase upper-cases the first letter of every word and drops the
// underscores between words
func ProperCase(s string) string {
	return strcase.ToCamel(s)
}

// FieldName is the struct field generated for an option's long name
func FieldName(longName string) string {
	fn := ProperCase(longName)
	if renamed, ok := fieldRenames[fn]; ok {
		return renamed
	}
	return fn
}

// PackageName is the Go package a route's implementation lives in
func PackageName(route string) string {
	pkg := strings.ToLower(route)
	if ReservedPackageNames[pkg] {
		return pkg + reservedSuffix
	}
	return pkg
}

// EnumTypeName is the type synthesized for an enum option
func EnumTypeName(route, field string) string {
	return ProperCase(route) + ProperCase(field)
}

// EnumPrefix is the two letter stem of an enum's constant names
func EnumPrefix(route, field string) string {
	return firstUpper(route) + firstUpper(field)
}

func firstUpper(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}
