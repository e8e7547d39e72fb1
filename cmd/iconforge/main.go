// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for iconforge. The serve command runs
// the HTTP API; the other commands run the icon pipeline from a terminal.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"iconforge/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "iconforge",
	Short: "Generate themed icon sets with hosted text-to-image models",
	Long: `iconforge turns a theme prompt into a set of four matching icons in
one of five preset styles, optionally tinted with brand colors.

Examples:
  iconforge serve
  iconforge generate "summer food" --style flat --out ./icons
  iconforge regenerate "ice cream" --style pastels --color "#ff6699"
  iconforge token set replicate`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration and installs the default logger:
// text at debug level in development, JSON at info level elsewhere.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	return cfg, nil
}
