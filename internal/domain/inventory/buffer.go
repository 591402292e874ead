package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

// ResourceBuffer is an ordered collection of discrete material batches.
// Insertion order is arrival order; Pop removes the oldest batch first.
// Capacity is unbounded. A buffer exclusively owns the materials it holds:
// batches are moved between buffers, never copied.
type ResourceBuffer struct {
	name  string
	items []*material.Material
}

// NewResourceBuffer creates an empty buffer. The name tags underflow errors.
func NewResourceBuffer(name string) *ResourceBuffer {
	return &ResourceBuffer{name: name}
}

// Name returns the buffer's diagnostic name
func (b *ResourceBuffer) Name() string {
	return b.name
}

// Push appends a batch to the buffer
func (b *ResourceBuffer) Push(mat *material.Material) {
	if mat == nil {
		return
	}
	b.items = append(b.items, mat)
}

// Pop removes and returns the oldest batch
func (b *ResourceBuffer) Pop() (*material.Material, error) {
	if len(b.items) == 0 {
		return nil, &ErrBufferUnderflow{
			Buffer:    b.name,
			Requested: decimal.Zero,
			Available: decimal.Zero,
		}
	}
	mat := b.items[0]
	b.items = b.items[1:]
	return mat, nil
}

// PopN removes and returns the n oldest batches
func (b *ResourceBuffer) PopN(n int) ([]*material.Material, error) {
	if n > len(b.items) {
		return nil, &ErrBufferUnderflow{
			Buffer:    b.name,
			Requested: decimal.NewFromInt(int64(n)),
			Available: decimal.NewFromInt(int64(len(b.items))),
		}
	}
	popped := b.items[:n]
	b.items = b.items[n:]
	return popped, nil
}

// PopQty removes exactly qty of material, oldest batches first. If the
// boundary falls inside a batch, that batch is split and the remainder stays
// in the buffer. Returns the removed batches in arrival order.
func (b *ResourceBuffer) PopQty(qty decimal.Decimal) ([]*material.Material, error) {
	if qty.GreaterThan(b.Quantity()) {
		return nil, &ErrBufferUnderflow{
			Buffer:    b.name,
			Requested: qty,
			Available: b.Quantity(),
		}
	}

	var manifest []*material.Material
	remaining := qty
	for remaining.IsPositive() {
		head := b.items[0]
		if head.Quantity().LessThanOrEqual(remaining) {
			remaining = remaining.Sub(head.Quantity())
			manifest = append(manifest, head)
			b.items = b.items[1:]
			continue
		}
		part, err := head.ExtractQty(remaining)
		if err != nil {
			return nil, err
		}
		manifest = append(manifest, part)
		remaining = decimal.Zero
	}
	return manifest, nil
}

// Quantity returns the aggregate quantity across all batches
func (b *ResourceBuffer) Quantity() decimal.Decimal {
	total := decimal.Zero
	for _, mat := range b.items {
		total = total.Add(mat.Quantity())
	}
	return total
}

// Count returns the number of discrete batches held
func (b *ResourceBuffer) Count() int {
	return len(b.items)
}

// IsEmpty reports whether the buffer holds no batches
func (b *ResourceBuffer) IsEmpty() bool {
	return len(b.items) == 0
}
