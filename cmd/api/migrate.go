// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/platform/migration"
)

var (
	databaseURL   string
	migrationPath string
	downSteps     int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the content schema",
	Long:  `Apply or roll back the SQL migrations of the content schema.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		return migration.RunUp(databaseURL, migrationPath, newLogger(false))
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if databaseURL == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		return migration.RunDown(databaseURL, migrationPath, downSteps, newLogger(false))
	},
}

func init() {
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	migrateCmd.PersistentFlags().StringVar(&migrationPath, "path", envOr("MIGRATION_PATH", "./data/migrations"), "migrations directory")
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back (0 = all)")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
