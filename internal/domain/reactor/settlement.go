package reactor

import (
	"context"
	"fmt"

	"github.com/calperin/fuelcycle-go/internal/application/common"
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
)

// AcceptDeliveries settles awarded incoming fuel trades. All delivered
// materials are merged in arrival order into the spillover accumulator, which
// is then drained into whole batches pushed to reserves. Reserves therefore
// only ever holds whole batches; the fractional remainder accumulates
// losslessly in spillover across deliveries.
func (f *Facility) AcceptDeliveries(ctx context.Context, deliveries []*exchange.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	logger := common.LoggerFromContext(ctx)

	for _, d := range deliveries {
		if d.Material == nil {
			return fmt.Errorf("facility %s: delivery carries no material", f.name)
		}
	}
	mat := deliveries[0].Material
	for _, d := range deliveries[1:] {
		if err := mat.Absorb(d.Material); err != nil {
			return fmt.Errorf("facility %s: %w", f.name, err)
		}
	}

	logger.Log("DEBUG", "facility adding material to its reserves", map[string]interface{}{
		"facility": f.name,
		"quantity": mat.Quantity().String(),
	})

	if err := f.spillover.Absorb(mat); err != nil {
		return fmt.Errorf("facility %s: %w", f.name, err)
	}
	batches, err := f.spillover.DrainBatches(f.params.BatchSize)
	if err != nil {
		return fmt.Errorf("facility %s: %w", f.name, err)
	}
	for _, batch := range batches {
		f.reserves.Push(batch)
	}
	return nil
}

// FillTrades settles awarded outgoing product trades, producing exactly one
// delivery per trade matching the traded quantity. A storage underflow here
// means the market awarded more than the offer constraint allowed; that is an
// accounting violation upstream, so it propagates as a fatal error rather
// than being clamped.
func (f *Facility) FillTrades(ctx context.Context, trades []*exchange.Trade) ([]*exchange.Delivery, error) {
	logger := common.LoggerFromContext(ctx)

	deliveries := make([]*exchange.Delivery, 0, len(trades))
	for _, trade := range trades {
		if !trade.Quantity.IsPositive() {
			return nil, fmt.Errorf("facility %s: trade quantity must be positive, got %s",
				f.name, trade.Quantity.String())
		}
		manifest, err := f.storage.PopQty(trade.Quantity)
		if err != nil {
			return nil, fmt.Errorf("facility %s: %w", f.name, err)
		}

		response := manifest[0]
		for _, mat := range manifest[1:] {
			if err := response.Absorb(mat); err != nil {
				return nil, fmt.Errorf("facility %s: %w", f.name, err)
			}
		}
		deliveries = append(deliveries, &exchange.Delivery{Trade: trade, Material: response})

		logger.Log("INFO", "facility filled an order", map[string]interface{}{
			"facility":  f.name,
			"quantity":  trade.Quantity.String(),
			"commodity": trade.Commodity,
		})
	}
	return deliveries, nil
}
