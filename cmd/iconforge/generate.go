// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"iconforge/internal/color"
	"iconforge/internal/download"
	"iconforge/internal/models"
	"iconforge/internal/style"
)

var (
	genStyle  string
	genColors []string
	genOutput string
	genFormat string

	regenStyle  string
	regenColor  string
	regenIndex  int
	regenOutput string
	regenFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate [theme]",
	Short: "Generate a set of four icons for a theme and save them",
	Long: `Generate four icons for a theme prompt and save them to a directory.

Examples:
  iconforge generate "summer food"
  iconforge generate "space" --style isometric --color "#1e90ff" --color "#fff"
  iconforge generate "office" --format jpg --out ./office-icons`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var regenerateCmd = &cobra.Command{
	Use:   "regenerate [subject]",
	Short: "Generate one icon for a subject in a single color",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd, regenerateCmd)

	generateCmd.Flags().StringVarP(&genStyle, "style", "s", "flat", "Preset style id (see 'iconforge styles')")
	generateCmd.Flags().StringSliceVarP(&genColors, "color", "c", nil, "Brand color as hex, repeatable")
	generateCmd.Flags().StringVarP(&genOutput, "out", "o", ".", "Output directory")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "png", "Output format: png or jpg")

	regenerateCmd.Flags().StringVarP(&regenStyle, "style", "s", "flat", "Preset style id")
	regenerateCmd.Flags().StringVarP(&regenColor, "color", "c", "", "Icon color as hex")
	regenerateCmd.Flags().IntVar(&regenIndex, "index", 0, "0-based position of the icon in its set")
	regenerateCmd.Flags().StringVarP(&regenOutput, "out", "o", ".", "Output directory")
	regenerateCmd.Flags().StringVarP(&regenFormat, "format", "f", "png", "Output format: png or jpg")
	regenerateCmd.MarkFlagRequired("color")
}

// checkStyle validates a style id, listing the valid ones on error.
func checkStyle(id string) error {
	if _, ok := style.Lookup(id); !ok {
		return fmt.Errorf("unknown style %q (valid: %s)", id, strings.Join(style.IDs(), ", "))
	}
	return nil
}

func checkColors(colors []string) error {
	for _, c := range colors {
		if !color.IsHex(c) {
			return fmt.Errorf("invalid hex color: %s", c)
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	theme := strings.TrimSpace(args[0])
	if theme == "" {
		return fmt.Errorf("theme prompt must not be empty")
	}
	if err := checkStyle(genStyle); err != nil {
		return err
	}
	if err := checkColors(genColors); err != nil {
		return err
	}
	format, err := download.ParseFormat(genFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Generating %q icons in style %s...\n", theme, genStyle)
	set, err := p.generator.GenerateIconSet(ctx, theme, genStyle, genColors)
	if err != nil {
		return fmt.Errorf("generate icons: %w", err)
	}

	return save(ctx, cmd, p, theme, set, format, genOutput)
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	subject := strings.TrimSpace(args[0])
	if subject == "" {
		return fmt.Errorf("subject must not be empty")
	}
	if err := checkStyle(regenStyle); err != nil {
		return err
	}
	if err := checkColors([]string{regenColor}); err != nil {
		return err
	}
	if regenIndex < 0 {
		return fmt.Errorf("index must not be negative")
	}
	format, err := download.ParseFormat(regenFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	icon, err := p.generator.RegenerateIconWithColor(ctx, subject, regenStyle, regenColor, regenIndex)
	if err != nil {
		return fmt.Errorf("regenerate icon: %w", err)
	}

	return save(ctx, cmd, p, subject, []models.GeneratedIcon{icon}, format, regenOutput)
}

// save downloads the icons one by one into dir and prints each path.
func save(ctx context.Context, cmd *cobra.Command, p *pipeline, name string, set []models.GeneratedIcon, format download.Format, dir string) error {
	out := cmd.OutOrStdout()
	for _, icon := range set {
		fmt.Fprintf(out, "  %d. %s\n", icon.ID, icon.Prompt)
	}

	files := download.Files(name, set, format)
	paths, err := p.downloads(nil).SaveAll(ctx, dir, files, format, download.DefaultDelay)
	for _, path := range paths {
		fmt.Fprintf(out, "✓ Saved %s\n", path)
	}
	if err != nil {
		return fmt.Errorf("save icons: %w", err)
	}

	fmt.Fprintf(out, "\nSaved %d/%d icons\n", len(paths), len(set))
	return nil
}
