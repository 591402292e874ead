package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calperin/fuelcycle-go/internal/infrastructure/config"
)

func newStatusCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the configured facility's parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			facility, err := buildFacility(cfg)
			if err != nil {
				return err
			}
			fmt.Println(facility.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	return cmd
}
