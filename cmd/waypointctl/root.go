package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pkordes/waypoint/internal/config"
	"github.com/pkordes/waypoint/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "waypointctl",
		Short:         "Place search and itinerary tools for Waypoint",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(), newItineraryCmd())
	return root
}

// loadClient reads the database-free configuration and builds a logger that
// writes to the command's stderr, keeping stdout for results.
func loadClient(cmd *cobra.Command) (config.Client, zerolog.Logger, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return config.Client{}, zerolog.Nop(), err
	}
	log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return config.Client{}, zerolog.Nop(), err
	}
	return cfg, log, nil
}
