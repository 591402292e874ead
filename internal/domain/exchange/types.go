package exchange

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

// Request asks the market for a quantity of a commodity
type Request struct {
	ID        uuid.UUID
	Trader    string
	Commodity string
	Recipe    string
	Quantity  decimal.Decimal
}

// NewRequest creates a request with a fresh identity
func NewRequest(trader, commodity, recipe string, quantity decimal.Decimal) *Request {
	return &Request{
		ID:        uuid.New(),
		Trader:    trader,
		Commodity: commodity,
		Recipe:    recipe,
		Quantity:  quantity,
	}
}

// RequestPortfolio groups a trader's requests for one clearing round. The
// capacity constraint caps the total quantity awarded across all offers
// matched to these requests.
type RequestPortfolio struct {
	Trader     string
	Requests   []*Request
	Constraint decimal.Decimal
}

// Bid proposes to supply part of a request. The offer is an untracked
// material: no quantity is reserved until the trade settles.
type Bid struct {
	Request *Request
	Bidder  string
	Offer   *material.Material
}

// BidPortfolio groups a trader's bids for one clearing round. The capacity
// constraint caps the total quantity awarded across all bids, so the market
// can never award more than the bidder actually holds.
type BidPortfolio struct {
	Bidder     string
	Bids       []*Bid
	Constraint decimal.Decimal
}

// Trade is an awarded match the market hands back after clearing
type Trade struct {
	ID        uuid.UUID
	Commodity string
	Recipe    string
	Quantity  decimal.Decimal
}

// NewTrade creates a trade award with a fresh identity
func NewTrade(commodity, recipe string, quantity decimal.Decimal) *Trade {
	return &Trade{
		ID:        uuid.New(),
		Commodity: commodity,
		Recipe:    recipe,
		Quantity:  quantity,
	}
}

// Delivery pairs a trade with the material fulfilling it
type Delivery struct {
	Trade    *Trade
	Material *material.Material
}

// InventoryReport is a diagnostic snapshot of a trader's holdings
type InventoryReport struct {
	Phase     string
	Reserves  decimal.Decimal
	Core      decimal.Decimal
	Storage   decimal.Decimal
	Spillover decimal.Decimal
}
