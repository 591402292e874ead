package reactor

import (
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
)

// Requests computes the facility's fuel procurement for this step, returning
// zero or one request portfolio.
//
// In INITIAL phase the order covers whatever is still missing for a full
// core: full core loading minus material already in the core, reserves, and
// spillover. With a zero look-ahead the initial order additionally covers the
// standing reserve target, since there will be no early reorder window later.
//
// In every other phase the order tops reserves back up to the standing
// target, and is only placed once the order time (process end minus
// look-ahead) has been reached.
//
// A non-positive computed size yields no request.
func (f *Facility) Requests(t int) *exchange.RequestPortfolio {
	var orderSize decimal.Decimal

	switch f.phase {
	case PhaseInitial:
		coreLoading := f.params.BatchSize.Mul(decimal.NewFromInt(int64(f.params.NBatches)))
		orderSize = coreLoading.
			Sub(f.core.Quantity()).
			Sub(f.reserves.Quantity()).
			Sub(f.spillover.Quantity())
		if f.params.PreorderTime == 0 {
			standing := f.params.BatchSize.Mul(decimal.NewFromInt(int64(f.params.NReserves)))
			orderSize = orderSize.Add(standing)
		}

	default:
		orderSize = f.params.BatchSize.Mul(decimal.NewFromInt(int64(f.params.NReserves))).
			Sub(f.reserves.Quantity()).
			Sub(f.spillover.Quantity())
		if f.OrderTime() > t {
			return nil
		}
	}

	if !orderSize.IsPositive() {
		return nil
	}
	return f.order(orderSize)
}

// order builds a single-request portfolio with a capacity constraint equal to
// the requested quantity, so the facility never accepts more than it asked
// for across all awarded offers.
func (f *Facility) order(size decimal.Decimal) *exchange.RequestPortfolio {
	req := exchange.NewRequest(f.name, f.params.InCommodity, f.params.InRecipe, size)
	return &exchange.RequestPortfolio{
		Trader:     f.name,
		Requests:   []*exchange.Request{req},
		Constraint: size,
	}
}
