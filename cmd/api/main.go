// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command grimoire is the entry point for the Grimoire HTTP API.
//
// # Commands
//
//   - serve: run the HTTP API (default when no command is given).
//   - migrate up|down: apply or roll back the content schema.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/grimoire/internal/platform/constants"
)

var rootCmd = &cobra.Command{
	Use:   "grimoire",
	Short: "Grimoire reference data API",
	Long:  `Grimoire serves multilingual spells and monsters over a REST API.`,
	RunE:  runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// newLogger builds the process logger. Every entry carries the app name.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}
