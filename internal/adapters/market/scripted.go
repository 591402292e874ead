package market

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/application/simulation"
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

// ScriptedMarket fills the runner's Market port with a scripted exogenous
// counterparty: an upstream supplier with a fixed per-step supply, and a
// downstream consumer with a fixed per-step demand on one commodity. It does
// no matching between traders; it exists so a facility can be driven through
// complete request → clear → settle cycles in the daemon and in tests.
type ScriptedMarket struct {
	supplyPerStep   decimal.Decimal
	demandPerStep   decimal.Decimal
	demandCommodity string
	demandRecipe    string
}

// NewScriptedMarket creates a driver with the given per-step supply cap and
// product demand. A zero supply means requests are never filled; a zero
// demand means bids are never awarded.
func NewScriptedMarket(supplyPerStep, demandPerStep decimal.Decimal, demandCommodity, demandRecipe string) (*ScriptedMarket, error) {
	if supplyPerStep.IsNegative() || demandPerStep.IsNegative() {
		return nil, fmt.Errorf("supply and demand cannot be negative")
	}
	if demandPerStep.IsPositive() && demandCommodity == "" {
		return nil, fmt.Errorf("demand commodity is required when demand is positive")
	}
	return &ScriptedMarket{
		supplyPerStep:   supplyPerStep,
		demandPerStep:   demandPerStep,
		demandCommodity: demandCommodity,
		demandRecipe:    demandRecipe,
	}, nil
}

// ExogenousRequests exposes the scripted consumer's per-step product demand
func (m *ScriptedMarket) ExogenousRequests(step int) []*exchange.Request {
	if !m.demandPerStep.IsPositive() {
		return nil
	}
	req := exchange.NewRequest("scripted-consumer", m.demandCommodity, m.demandRecipe, m.demandPerStep)
	return []*exchange.Request{req}
}

// Clear fills each request portfolio up to the step's remaining supply and
// awards trades against bids up to the step's demand. Portfolio capacity
// constraints are honored on both sides.
func (m *ScriptedMarket) Clear(
	ctx context.Context,
	step int,
	requests map[string]*exchange.RequestPortfolio,
	bids map[string]*exchange.BidPortfolio,
) (*simulation.ClearingResult, error) {
	result := &simulation.ClearingResult{
		Deliveries: make(map[string][]*exchange.Delivery),
		Awards:     make(map[string][]*exchange.Trade),
	}

	// shared caps are allocated in trader-id order so constrained steps
	// resolve the same way every run
	supply := m.supplyPerStep
	for _, trader := range sortedKeys(requests) {
		portfolio := requests[trader]
		granted := decimal.Zero
		for _, req := range portfolio.Requests {
			qty := req.Quantity
			if remaining := portfolio.Constraint.Sub(granted); qty.GreaterThan(remaining) {
				qty = remaining
			}
			if qty.GreaterThan(supply) {
				qty = supply
			}
			if !qty.IsPositive() {
				continue
			}
			mat, err := material.New(qty, req.Recipe)
			if err != nil {
				return nil, fmt.Errorf("scripted market: %w", err)
			}
			trade := exchange.NewTrade(req.Commodity, req.Recipe, qty)
			result.Deliveries[trader] = append(result.Deliveries[trader],
				&exchange.Delivery{Trade: trade, Material: mat})
			granted = granted.Add(qty)
			supply = supply.Sub(qty)
		}
	}

	demand := m.demandPerStep
	for _, trader := range sortedKeys(bids) {
		portfolio := bids[trader]
		awarded := decimal.Zero
		for _, bid := range portfolio.Bids {
			if bid.Request.Commodity != m.demandCommodity {
				continue
			}
			qty := bid.Offer.Quantity()
			if remaining := portfolio.Constraint.Sub(awarded); qty.GreaterThan(remaining) {
				qty = remaining
			}
			if qty.GreaterThan(demand) {
				qty = demand
			}
			if !qty.IsPositive() {
				continue
			}
			result.Awards[trader] = append(result.Awards[trader],
				exchange.NewTrade(bid.Request.Commodity, bid.Offer.Recipe(), qty))
			awarded = awarded.Add(qty)
			demand = demand.Sub(qty)
		}
	}

	return result, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
