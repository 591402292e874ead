package config

// SimulationConfig holds the scripted run parameters for the daemon
type SimulationConfig struct {
	// Number of steps to simulate
	Steps int `mapstructure:"steps" validate:"min=1"`

	// Fuel quantity the scripted supplier can deliver per step
	SupplyPerStep float64 `mapstructure:"supply_per_step" validate:"min=0"`

	// Product quantity the scripted consumer demands per step
	DemandPerStep float64 `mapstructure:"demand_per_step" validate:"min=0"`

	// Wall-clock pacing in steps per second (0 = run flat out)
	StepsPerSecond float64 `mapstructure:"steps_per_second" validate:"min=0"`
}
