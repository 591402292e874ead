package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

// Spillover is the fractional accumulator bridging market deliveries of
// arbitrary quantity and whole-batch reserve pushes. Deliveries are absorbed
// in full; DrainBatches then extracts whole batches until less than one batch
// size remains. Quantity may exceed one batch size only between Absorb and
// DrainBatches, which callers run back to back.
type Spillover struct {
	mat *material.Material
}

// NewSpillover creates a blank accumulator
func NewSpillover() *Spillover {
	return &Spillover{mat: material.NewBlank()}
}

// Reset discards the accumulated material and returns to blank
func (s *Spillover) Reset() {
	s.mat = material.NewBlank()
}

// Absorb merges a delivery into the accumulator
func (s *Spillover) Absorb(mat *material.Material) error {
	return s.mat.Absorb(mat)
}

// Quantity returns the accumulated fractional quantity
func (s *Spillover) Quantity() decimal.Decimal {
	return s.mat.Quantity()
}

// Recipe returns the recipe of the accumulated material ("" while blank)
func (s *Spillover) Recipe() string {
	return s.mat.Recipe()
}

// DrainBatches extracts whole batches of batchSize while enough material is
// accumulated. Afterwards the remaining quantity is strictly less than
// batchSize.
func (s *Spillover) DrainBatches(batchSize decimal.Decimal) ([]*material.Material, error) {
	var batches []*material.Material
	for s.mat.Quantity().GreaterThanOrEqual(batchSize) {
		batch, err := s.mat.ExtractQty(batchSize)
		if err != nil {
			return batches, err
		}
		batches = append(batches, batch)
	}
	return batches, nil
}
