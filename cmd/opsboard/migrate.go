package main

import (
	"github.com/deppfellow/opsboard/internal/config"
	"github.com/deppfellow/opsboard/internal/database"
	"github.com/deppfellow/opsboard/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		log := logger.NewLogger(cfg.Observability)
		return database.Migrate(cmd.Context(), &log, cfg)
	},
}
