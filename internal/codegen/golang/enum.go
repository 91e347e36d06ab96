package golang

import (
	"fmt"
	"strings"

	"github.com/okra-platform/sdkgen/internal/codegen/writer"
)

// EnumSpec describes one synthesized enum
type EnumSpec struct {
	// TypeName is the integer-backed Go type
	TypeName string
	// Prefix is the two letter stem shared by all constants
	Prefix string
	// Suffix disambiguates the sentinel of colliding stems
	Suffix string
	// Labels in declaration order; order fixes both constant values and
	// String table positions
	Labels []string
}

// Sentinel is the zero-value constant name
func (e *EnumSpec) Sentinel() string {
	return "No" + e.Prefix + e.Suffix
}

// Constants returns the constant names in ordinal order, sentinel first
func (e *EnumSpec) Constants() []string {
	ret := make([]string, 0, len(e.Labels)+1)
	ret = append(ret, e.Sentinel())
	for _, label := range e.Labels {
		ret = append(ret, e.Prefix+ProperCase(label))
	}
	return ret
}

// StringTable returns the String() results in ordinal order
func (e *EnumSpec) StringTable() []string {
	ret := make([]string, 0, len(e.Labels)+1)
	ret = append(ret, strings.ToLower(e.Sentinel()))
	for _, label := range e.Labels {
		ret = append(ret, strings.ToLower(label))
	}
	return ret
}

// SynthesizeEnum emits the type, its iota constant block and a String
// method indexing a literal table
func SynthesizeEnum(e *EnumSpec) string {
	w := writer.New("\t")

	w.WriteLinef("type %s int", e.TypeName)
	w.BlankLine()

	constants := e.Constants()
	w.WriteBlock("const (", ")", func() {
		w.WriteLinef("%s %s = iota", constants[0], e.TypeName)
		for _, c := range constants[1:] {
			w.WriteLine(c)
		}
	})
	w.BlankLine()

	w.WriteBlock(fmt.Sprintf("func (v %s) String() string {", e.TypeName), "}", func() {
		w.WriteBlock("return []string{", "}[v]", func() {
			for _, s := range e.StringTable() {
				w.WriteLinef("%q,", s)
			}
		})
	})

	return w.String()
}
