package material

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is a discrete quantity of a single recipe. It is owned by exactly
// one buffer at a time; ownership transfers when the pointer moves between
// buffers. Tracked materials carry a unique identity for ledger records,
// untracked materials are proposals (offers, requests) that never enter a
// buffer.
type Material struct {
	id       uuid.UUID
	quantity decimal.Decimal
	recipe   string
	tracked  bool
}

// New creates a tracked material with the given quantity and recipe
func New(quantity decimal.Decimal, recipe string) (*Material, error) {
	if quantity.IsNegative() {
		return nil, &ErrInvalidQuantity{Quantity: quantity}
	}
	if recipe == "" {
		return nil, fmt.Errorf("material recipe cannot be empty")
	}
	return &Material{
		id:       uuid.New(),
		quantity: quantity,
		recipe:   recipe,
		tracked:  true,
	}, nil
}

// NewUntracked creates an identity-less material used for market proposals
func NewUntracked(quantity decimal.Decimal, recipe string) (*Material, error) {
	if quantity.IsNegative() {
		return nil, &ErrInvalidQuantity{Quantity: quantity}
	}
	if recipe == "" {
		return nil, fmt.Errorf("material recipe cannot be empty")
	}
	return &Material{quantity: quantity, recipe: recipe}, nil
}

// NewBlank creates an empty tracked material with no recipe yet. A blank
// material adopts the recipe of the first material it absorbs.
func NewBlank() *Material {
	return &Material{id: uuid.New(), quantity: decimal.Zero, tracked: true}
}

// ID returns the material's unique identity (zero UUID if untracked)
func (m *Material) ID() uuid.UUID {
	return m.id
}

// Quantity returns the material's current quantity
func (m *Material) Quantity() decimal.Decimal {
	return m.quantity
}

// Recipe returns the material's composition recipe name
func (m *Material) Recipe() string {
	return m.recipe
}

// IsTracked reports whether the material carries an identity
func (m *Material) IsTracked() bool {
	return m.tracked
}

// Absorb merges other into m, zeroing other. The receiver adopts the donor's
// recipe if it has none (blank) or holds zero quantity; otherwise the recipes
// must match.
func (m *Material) Absorb(other *Material) error {
	if other == nil {
		return fmt.Errorf("cannot absorb nil material")
	}
	if m.recipe == "" || m.quantity.IsZero() {
		if other.recipe != "" {
			m.recipe = other.recipe
		}
	} else if other.recipe != "" && other.recipe != m.recipe {
		return &ErrRecipeMismatch{Have: m.recipe, Got: other.recipe}
	}
	m.quantity = m.quantity.Add(other.quantity)
	other.quantity = decimal.Zero
	return nil
}

// ExtractQty splits off exactly qty from m into a new tracked material.
// The extracted material shares m's recipe.
func (m *Material) ExtractQty(qty decimal.Decimal) (*Material, error) {
	if !qty.IsPositive() {
		return nil, &ErrInvalidQuantity{Quantity: qty}
	}
	if qty.GreaterThan(m.quantity) {
		return nil, &ErrInsufficientQuantity{Requested: qty, Available: m.quantity}
	}
	m.quantity = m.quantity.Sub(qty)
	return &Material{
		id:       uuid.New(),
		quantity: qty,
		recipe:   m.recipe,
		tracked:  m.tracked,
	}, nil
}

// Transmute swaps the material's recipe in place. Quantity is preserved; the
// physical transmutation model is opaque to this layer.
func (m *Material) Transmute(recipe string) error {
	if recipe == "" {
		return fmt.Errorf("cannot transmute to empty recipe")
	}
	m.recipe = recipe
	return nil
}

func (m *Material) String() string {
	return fmt.Sprintf("Material(%s %s)", m.quantity.String(), m.recipe)
}
