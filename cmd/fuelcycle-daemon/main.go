package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "fuelcycle-daemon",
		Short: "Batch-refueled facility agent for discrete-time exchange simulations",
		Long: `fuelcycle-daemon runs a batch-refueled facility through a scripted
discrete-time simulation: the facility requests input fuel, processes full
cores, and offers finished product against an exogenous supply/demand script.

Examples:
  fuelcycle-daemon run --config config.yaml --steps 50
  fuelcycle-daemon status --config config.yaml`,
	}

	root.AddCommand(newRunCommand())
	root.AddCommand(newStatusCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
