package config

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/calperin/fuelcycle-go/internal/domain/reactor"
)

// FacilityConfig holds the facility's operating parameters. All durations are
// in simulation steps.
type FacilityConfig struct {
	// Facility display name
	Name string `mapstructure:"name" validate:"required"`

	// Input fuel commodity and recipe
	InCommodity string `mapstructure:"in_commodity" validate:"required"`
	InRecipe    string `mapstructure:"in_recipe" validate:"required"`

	// Output product commodity and recipe
	OutCommodity string `mapstructure:"out_commodity" validate:"required"`
	OutRecipe    string `mapstructure:"out_recipe" validate:"required"`

	// Steps one process period lasts
	ProcessTime int `mapstructure:"process_time" validate:"required,min=1"`

	// Whole batches a full core holds
	NBatches int `mapstructure:"n_batches" validate:"required,min=1"`

	// Nominal quantity of one batch
	BatchSize float64 `mapstructure:"batch_size" validate:"required,gt=0"`

	// Steps the facility cools down between unload and the next process
	// period (default 0)
	RefuelTime int `mapstructure:"refuel_time" validate:"min=0"`

	// Steps before process end at which a standing reorder may be placed
	// (default 0)
	OrderLookahead int `mapstructure:"order_lookahead" validate:"min=0"`

	// Batches unloaded per process period (default 1)
	NReload int `mapstructure:"n_reload" validate:"min=0"`

	// Standing reserve target in whole batches (default 1). Configured
	// independently of n_reload.
	NReserves int `mapstructure:"n_reserves" validate:"min=0"`

	// Whole batches pre-populated into each buffer at deployment
	InitialCondition InitCondConfig `mapstructure:"initial_condition"`
}

// InitCondConfig holds the deployment pre-population counts (default all 0)
type InitCondConfig struct {
	Reserves int `mapstructure:"n_reserves" validate:"min=0"`
	Core     int `mapstructure:"n_core" validate:"min=0"`
	Storage  int `mapstructure:"n_storage" validate:"min=0"`
}

// Params converts the config into domain facility parameters
func (c *FacilityConfig) Params() (reactor.Params, error) {
	batchSize := decimal.NewFromFloat(c.BatchSize)
	if !batchSize.IsPositive() {
		return reactor.Params{}, fmt.Errorf("batch_size must be positive, got %v", c.BatchSize)
	}
	return reactor.Params{
		ProcessTime:  c.ProcessTime,
		RefuelTime:   c.RefuelTime,
		PreorderTime: c.OrderLookahead,
		NBatches:     c.NBatches,
		NLoad:        c.NReload,
		NReserves:    c.NReserves,
		BatchSize:    batchSize,
		InCommodity:  c.InCommodity,
		InRecipe:     c.InRecipe,
		OutCommodity: c.OutCommodity,
		OutRecipe:    c.OutRecipe,
	}, nil
}

// InitCond converts the config into the domain initial condition
func (c *FacilityConfig) InitCond() reactor.InitCond {
	return reactor.InitCond{
		Reserves: c.InitialCondition.Reserves,
		Core:     c.InitialCondition.Core,
		Storage:  c.InitialCondition.Storage,
	}
}
