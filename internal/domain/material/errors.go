package material

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity indicates a negative or non-positive quantity where one
// is not allowed
type ErrInvalidQuantity struct {
	Quantity decimal.Decimal
}

func (e *ErrInvalidQuantity) Error() string {
	return fmt.Sprintf("invalid material quantity: %s", e.Quantity.String())
}

// ErrInsufficientQuantity indicates an extraction larger than the material holds
type ErrInsufficientQuantity struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *ErrInsufficientQuantity) Error() string {
	return fmt.Sprintf("cannot extract %s, material holds %s",
		e.Requested.String(), e.Available.String())
}

// ErrRecipeMismatch indicates an absorb between materials of different recipes
type ErrRecipeMismatch struct {
	Have string
	Got  string
}

func (e *ErrRecipeMismatch) Error() string {
	return fmt.Sprintf("recipe mismatch: material holds %q, absorbed %q", e.Have, e.Got)
}

// ErrUnknownRecipe indicates a recipe name not present in the registry
type ErrUnknownRecipe struct {
	Name string
}

func (e *ErrUnknownRecipe) Error() string {
	return fmt.Sprintf("unknown recipe: %s", e.Name)
}
