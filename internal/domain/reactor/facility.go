package reactor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/application/common"
	"github.com/calperin/fuelcycle-go/internal/domain/exchange"
	"github.com/calperin/fuelcycle-go/internal/domain/inventory"
	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

// Params holds the facility's operating parameters. All durations are in
// simulation steps.
type Params struct {
	ProcessTime  int
	RefuelTime   int
	PreorderTime int
	NBatches     int
	NLoad        int
	NReserves    int
	BatchSize    decimal.Decimal
	InCommodity  string
	InRecipe     string
	OutCommodity string
	OutRecipe    string
}

// InitCond describes how many whole batches are pre-populated into each
// buffer at deployment. Consumed once, at Deploy.
type InitCond struct {
	Reserves int
	Core     int
	Storage  int
}

// Facility models the discrete-time operating cycle of a batch-refueled
// facility: fuel batches flow market → spillover → reserves → core → storage
// → market, with phase transitions driven once per tick and refueling once
// per tock.
type Facility struct {
	id      uuid.UUID
	name    string
	params  Params
	recipes *material.Registry

	reserves  *inventory.ResourceBuffer
	core      *inventory.ResourceBuffer
	storage   *inventory.ResourceBuffer
	spillover *inventory.Spillover

	phase     Phase
	startTime int
}

// NewFacility creates a facility with validated parameters. Recipes must be
// resolvable in the registry at construction time.
func NewFacility(name string, params Params, recipes *material.Registry) (*Facility, error) {
	if name == "" {
		return nil, fmt.Errorf("facility name cannot be empty")
	}
	if params.ProcessTime < 1 {
		return nil, fmt.Errorf("process time must be at least 1 step, got %d", params.ProcessTime)
	}
	if params.RefuelTime < 0 {
		return nil, fmt.Errorf("refuel time cannot be negative, got %d", params.RefuelTime)
	}
	if params.PreorderTime < 0 {
		return nil, fmt.Errorf("order look-ahead cannot be negative, got %d", params.PreorderTime)
	}
	if params.NBatches < 1 {
		return nil, fmt.Errorf("batches per core must be at least 1, got %d", params.NBatches)
	}
	if params.NLoad < 1 || params.NLoad > params.NBatches {
		return nil, fmt.Errorf("reload count must be between 1 and %d, got %d", params.NBatches, params.NLoad)
	}
	if params.NReserves < 0 {
		return nil, fmt.Errorf("reserve-batch target cannot be negative, got %d", params.NReserves)
	}
	if !params.BatchSize.IsPositive() {
		return nil, fmt.Errorf("batch size must be positive, got %s", params.BatchSize.String())
	}
	if params.InCommodity == "" || params.OutCommodity == "" {
		return nil, fmt.Errorf("input and output commodities are required")
	}
	if recipes == nil {
		return nil, fmt.Errorf("recipe registry is required")
	}
	if !recipes.Has(params.InRecipe) {
		return nil, &material.ErrUnknownRecipe{Name: params.InRecipe}
	}
	if !recipes.Has(params.OutRecipe) {
		return nil, &material.ErrUnknownRecipe{Name: params.OutRecipe}
	}

	return &Facility{
		id:        uuid.New(),
		name:      name,
		params:    params,
		recipes:   recipes,
		reserves:  inventory.NewResourceBuffer("reserves"),
		core:      inventory.NewResourceBuffer("core"),
		storage:   inventory.NewResourceBuffer("storage"),
		spillover: inventory.NewSpillover(),
		phase:     PhaseInitial,
		startTime: -1,
	}, nil
}

// Deploy resets the facility to its pre-operational state and pre-populates
// the buffers per the initial condition: whole batches of the input recipe in
// reserves and core, whole batches of the output recipe in storage.
func (f *Facility) Deploy(ics InitCond) error {
	if ics.Reserves < 0 || ics.Core < 0 || ics.Storage < 0 {
		return fmt.Errorf("initial condition counts cannot be negative")
	}

	f.phase = PhaseInitial
	f.startTime = -1
	f.reserves = inventory.NewResourceBuffer("reserves")
	f.core = inventory.NewResourceBuffer("core")
	f.storage = inventory.NewResourceBuffer("storage")
	f.spillover = inventory.NewSpillover()

	for i := 0; i < ics.Reserves; i++ {
		mat, err := material.New(f.params.BatchSize, f.params.InRecipe)
		if err != nil {
			return err
		}
		f.reserves.Push(mat)
	}
	for i := 0; i < ics.Core; i++ {
		mat, err := material.New(f.params.BatchSize, f.params.InRecipe)
		if err != nil {
			return err
		}
		f.core.Push(mat)
	}
	for i := 0; i < ics.Storage; i++ {
		mat, err := material.New(f.params.BatchSize, f.params.OutRecipe)
		if err != nil {
			return err
		}
		f.storage.Push(mat)
	}
	return nil
}

// Accessors

// ID returns the facility's unique identity
func (f *Facility) ID() uuid.UUID {
	return f.id
}

// Name returns the facility's display name
func (f *Facility) Name() string {
	return f.name
}

// Params returns the facility's operating parameters
func (f *Facility) Params() Params {
	return f.params
}

// Phase returns the current operating phase
func (f *Facility) Phase() Phase {
	return f.phase
}

// StartTime returns when the current process period began (-1 before the
// first PROCESS entry)
func (f *Facility) StartTime() int {
	return f.startTime
}

// EndTime returns when the current process period ends
func (f *Facility) EndTime() int {
	return f.startTime + f.params.ProcessTime
}

// OrderTime returns the earliest step at which a standing reorder may be
// placed: process end minus the configured look-ahead
func (f *Facility) OrderTime() int {
	return f.EndTime() - f.params.PreorderTime
}

// ReserveQuantity returns the aggregate quantity held in reserves
func (f *Facility) ReserveQuantity() decimal.Decimal {
	return f.reserves.Quantity()
}

// CoreQuantity returns the aggregate quantity held in the core
func (f *Facility) CoreQuantity() decimal.Decimal {
	return f.core.Quantity()
}

// CoreCount returns the number of batches in the core
func (f *Facility) CoreCount() int {
	return f.core.Count()
}

// ReserveCount returns the number of batches in reserves
func (f *Facility) ReserveCount() int {
	return f.reserves.Count()
}

// StorageQuantity returns the aggregate quantity of finished product held
func (f *Facility) StorageQuantity() decimal.Decimal {
	return f.storage.Quantity()
}

// SpilloverQuantity returns the fractional quantity awaiting batch completion
func (f *Facility) SpilloverQuantity() decimal.Decimal {
	return f.spillover.Quantity()
}

// Report returns a diagnostic snapshot of the facility's holdings
func (f *Facility) Report() exchange.InventoryReport {
	return exchange.InventoryReport{
		Phase:     string(f.phase),
		Reserves:  f.reserves.Quantity(),
		Core:      f.core.Quantity(),
		Storage:   f.storage.Quantity(),
		Spillover: f.spillover.Quantity(),
	}
}

func (f *Facility) String() string {
	return fmt.Sprintf(
		"%s has facility parameters {Process Time = %d, Refuel Time = %d, "+
			"Core Loading = %s, Batches Per Core = %d, converts commodity '%s' into commodity '%s'}",
		f.name,
		f.params.ProcessTime,
		f.params.RefuelTime,
		f.params.BatchSize.Mul(decimal.NewFromInt(int64(f.params.NBatches))).String(),
		f.params.NBatches,
		f.params.InCommodity,
		f.params.OutCommodity,
	)
}

// setPhase is the sole phase mutator. Entering PROCESS records the start time.
func (f *Facility) setPhase(ctx context.Context, p Phase, t int) {
	logger := common.LoggerFromContext(ctx)
	logger.Log("DEBUG", "facility changing phases", map[string]interface{}{
		"facility": f.name,
		"from":     f.phase.String(),
		"to":       p.String(),
		"time":     t,
	})
	if p == PhaseProcess {
		f.startTime = t
	}
	f.phase = p
}
