package main

import (
	"fmt"
	"stay/config"
	"stay/helper"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	actions := []struct {
		use   string
		short string
		run   func(*config.Config) error
	}{
		{use: "up", short: "Apply all pending migrations", run: helper.Up},
		{use: "down", short: "Roll back the latest migration", run: helper.Down},
		{use: "step-up", short: "Apply the next pending migration", run: helper.StepUp},
		{use: "drop", short: "Roll back every migration", run: helper.Drop},
	}

	for _, action := range actions {
		cmd.AddCommand(&cobra.Command{
			Use:   action.use,
			Short: action.short,
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				if err := action.run(config.Get()); err != nil {
					return fmt.Errorf("migrate %s: %w", action.use, err)
				}

				return nil
			},
		})
	}

	return cmd
}
