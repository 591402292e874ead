package reactor

import (
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

// Bids offers finished product against the step's collected requests,
// returning zero or one bid portfolio. Each request on the output commodity
// gets a bid for the lesser of its target quantity and current storage; the
// portfolio carries an aggregate capacity constraint equal to total storage,
// so the market can never award more in total than storage actually holds.
// Bids are proposals: nothing is reserved or removed until settlement.
func (f *Facility) Bids(requests []*exchange.Request) *exchange.BidPortfolio {
	available := f.storage.Quantity()
	if !available.IsPositive() {
		return nil
	}

	var bids []*exchange.Bid
	for _, req := range requests {
		if req.Commodity != f.params.OutCommodity {
			continue
		}
		qty := req.Quantity
		if available.LessThan(qty) {
			qty = available
		}
		offer, err := material.NewUntracked(qty, f.params.OutRecipe)
		if err != nil {
			continue
		}
		bids = append(bids, &exchange.Bid{
			Request: req,
			Bidder:  f.name,
			Offer:   offer,
		})
	}
	if len(bids) == 0 {
		return nil
	}

	return &exchange.BidPortfolio{
		Bidder:     f.name,
		Bids:       bids,
		Constraint: available,
	}
}
