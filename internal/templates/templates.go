// Package templates loads the SDK skeletons and substitutes the per-route
// placeholders into them.
package templates

import (
	"strings"
)

// Template names
const (
	// Minimal is the thin per-route entry point
	Minimal = "blank_sdk.go.tmpl"
	// Full is the options struct plus enums
	Full = "blank_sdk2.go.tmpl"
)

// Placeholders substituted by Render. Template text must spell them exactly.
const (
	ProperKey  = "[{PROPER}]"
	LowerKey   = "[{LOWER}]"
	PackageKey = "[{PKG}]"
	FieldsKey  = "[{FIELDS}]"
	EnumsKey   = "[{ENUMS}]"
)

// NoEnums replaces EnumsKey when a route has no enums
const NoEnums = "// no enums\n\n"

// Values are the per-route substitutions
type Values struct {
	Proper  string
	Lower   string
	Package string
	Fields  string
	Enums   string
}

// Render substitutes every placeholder in text. All placeholders are
// replaced in a single pass, so substituted values are never rescanned.
func Render(text string, v Values) string {
	enums := v.Enums
	if enums == "" {
		enums = NoEnums
	}
	r := strings.NewReplacer(
		FieldsKey, v.Fields,
		EnumsKey, enums,
		ProperKey, v.Proper,
		LowerKey, v.Lower,
		PackageKey, v.Package,
	)
	return r.Replace(text)
}
