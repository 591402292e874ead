package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/calperin/fuelcycle-go/internal/adapters/market"
	"github.com/calperin/fuelcycle-go/internal/adapters/metrics"
	"github.com/calperin/fuelcycle-go/internal/adapters/persistence"
	"github.com/calperin/fuelcycle-go/internal/application/common"
	"github.com/calperin/fuelcycle-go/internal/application/simulation"
	"github.com/calperin/fuelcycle-go/internal/domain/material"
	"github.com/calperin/fuelcycle-go/internal/domain/reactor"
	"github.com/calperin/fuelcycle-go/internal/infrastructure/config"
	"github.com/calperin/fuelcycle-go/internal/infrastructure/database"
	"github.com/calperin/fuelcycle-go/internal/infrastructure/pidfile"
)

func newRunCommand() *cobra.Command {
	var (
		configPath string
		steps      int
		supply     float64
		demand     float64
		pacing     float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the facility through a scripted simulation",
		Long: `Deploy the configured facility and drive it through a number of
simulation steps against a scripted supplier/consumer, recording settled
trades and per-step inventory levels in the ledger.

Examples:
  fuelcycle-daemon run --config config.yaml
  fuelcycle-daemon run --steps 50 --supply 40 --demand 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("steps") {
				cfg.Simulation.Steps = steps
			}
			if cmd.Flags().Changed("supply") {
				cfg.Simulation.SupplyPerStep = supply
			}
			if cmd.Flags().Changed("demand") {
				cfg.Simulation.DemandPerStep = demand
			}
			if cmd.Flags().Changed("rate") {
				cfg.Simulation.StepsPerSecond = pacing
			}
			return runSimulation(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	cmd.Flags().IntVar(&steps, "steps", 0, "Number of steps to simulate")
	cmd.Flags().Float64Var(&supply, "supply", 0, "Fuel supply available per step")
	cmd.Flags().Float64Var(&demand, "demand", 0, "Product demand per step")
	cmd.Flags().Float64Var(&pacing, "rate", 0, "Wall-clock pacing in steps per second (0 = unpaced)")

	return cmd
}

func runSimulation(ctx context.Context, cfg *config.Config) error {
	if cfg.Daemon.PIDFile != "" {
		pid := pidfile.New(cfg.Daemon.PIDFile)
		if err := pid.Acquire(); err != nil {
			return err
		}
		defer func() { _ = pid.Release() }()
	}

	facility, err := buildFacility(cfg)
	if err != nil {
		return err
	}
	if err := facility.Deploy(cfg.Facility.InitCond()); err != nil {
		return fmt.Errorf("failed to deploy facility: %w", err)
	}
	fmt.Println(facility.String())

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to ledger database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate ledger database: %w", err)
	}
	ledger := persistence.NewGormTradeLedger(db)

	script, err := market.NewScriptedMarket(
		decimal.NewFromFloat(cfg.Simulation.SupplyPerStep),
		decimal.NewFromFloat(cfg.Simulation.DemandPerStep),
		cfg.Facility.OutCommodity,
		cfg.Facility.OutRecipe,
	)
	if err != nil {
		return err
	}

	runner, err := simulation.NewRunner(script, ledger)
	if err != nil {
		return err
	}
	if err := runner.Register(facility.Name(), facility); err != nil {
		return err
	}
	runner.SetPacing(cfg.Simulation.StepsPerSecond)

	ctx = common.WithLogger(ctx, newConsoleLogger(cfg.Logging.Level))

	if cfg.Metrics.Enabled {
		collector := metrics.NewSimulationCollector()
		runner.SetObserver(collector)
		server := metrics.NewHTTPServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path, collector.Registry())
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				common.LoggerFromContext(ctx).Log("WARN", "metrics server stopped",
					map[string]interface{}{"error": err.Error()})
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	if err := runner.Run(ctx, cfg.Simulation.Steps); err != nil {
		return fmt.Errorf("simulation aborted: %w", err)
	}

	return printSummary(ctx, ledger, facility)
}

func buildFacility(cfg *config.Config) (*reactor.Facility, error) {
	recipes := material.NewRegistry()
	for _, name := range []string{cfg.Facility.InRecipe, cfg.Facility.OutRecipe} {
		if err := recipes.Register(name, material.Composition{}); err != nil {
			return nil, err
		}
	}
	params, err := cfg.Facility.Params()
	if err != nil {
		return nil, err
	}
	return reactor.NewFacility(cfg.Facility.Name, params, recipes)
}

func printSummary(ctx context.Context, ledger *persistence.GormTradeLedger, facility *reactor.Facility) error {
	bought, err := ledger.TradedTotal(ctx, facility.Name(), simulation.DirectionIncoming)
	if err != nil {
		return err
	}
	sold, err := ledger.TradedTotal(ctx, facility.Name(), simulation.DirectionOutgoing)
	if err != nil {
		return err
	}
	report := facility.Report()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "phase\t%s\n", facility.Phase().String())
	fmt.Fprintf(w, "fuel received\t%s\n", bought.String())
	fmt.Fprintf(w, "product delivered\t%s\n", sold.String())
	fmt.Fprintf(w, "reserves\t%s\n", report.Reserves.String())
	fmt.Fprintf(w, "core\t%s\n", report.Core.String())
	fmt.Fprintf(w, "storage\t%s\n", report.Storage.String())
	fmt.Fprintf(w, "spillover\t%s\n", report.Spillover.String())
	return w.Flush()
}
