package material

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Composition maps nuclide symbols to mass fractions
type Composition map[string]decimal.Decimal

// Registry resolves recipe names to compositions. It stands in for the host
// simulation's recipe table: the facility only needs names to resolve at
// construction time, the compositions themselves are opaque to the fuel cycle.
type Registry struct {
	recipes map[string]Composition
}

// NewRegistry creates an empty recipe registry
func NewRegistry() *Registry {
	return &Registry{recipes: make(map[string]Composition)}
}

// Register adds a named recipe. Mass fractions must be non-negative.
func (r *Registry) Register(name string, comp Composition) error {
	if name == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	for nuclide, frac := range comp {
		if frac.IsNegative() {
			return fmt.Errorf("recipe %s: negative fraction for %s", name, nuclide)
		}
	}
	r.recipes[name] = comp
	return nil
}

// Get returns the composition for a recipe name
func (r *Registry) Get(name string) (Composition, error) {
	comp, ok := r.recipes[name]
	if !ok {
		return nil, &ErrUnknownRecipe{Name: name}
	}
	return comp, nil
}

// Has reports whether a recipe name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.recipes[name]
	return ok
}

// Names returns all registered recipe names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.recipes))
	for name := range r.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
