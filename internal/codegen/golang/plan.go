package golang

import (
	"fmt"

	"github.com/okra-platform/sdkgen/internal/registry"
	"github.com/okra-platform/sdkgen/internal/schema"
)

// collisionStem is the one enum prefix shared by two unrelated options.
// Only this literal stem is disambiguated.
const collisionStem = "CM"

// Plan holds decisions that depend on the whole registry rather than on
// a single route. It is computed once before any file is generated.
type Plan struct {
	suffixes   map[int]string
	collisions int
}

// NewPlan walks every relevant route and its options in registry order and
// numbers the enums whose prefix is the collision stem: the first gets
// suffix "1", every later one "2".
func NewPlan(reg *registry.Registry) (*Plan, error) {
	p := &Plan{suffixes: make(map[int]string)}

	for _, route := range reg.RelevantRoutes() {
		for _, opt := range reg.OptionsFor(route.Name) {
			t, err := schema.Parse(opt.DeclaredType)
			if err != nil {
				return nil, fmt.Errorf("option %s.%s: %w", route.Name, opt.LongName, err)
			}
			if !t.IsEnum() || EnumPrefix(route.Name, FieldName(opt.LongName)) != collisionStem {
				continue
			}

			p.collisions++
			if p.collisions == 1 {
				p.suffixes[opt.Seq] = "1"
			} else {
				p.suffixes[opt.Seq] = "2"
			}
		}
	}

	return p, nil
}

// Suffix returns the sentinel suffix planned for opt, usually ""
func (p *Plan) Suffix(opt registry.Option) string {
	return p.suffixes[opt.Seq]
}

// Collisions returns how many enums hit the collision stem
func (p *Plan) Collisions() int {
	return p.collisions
}
