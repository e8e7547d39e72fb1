// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"bufio"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"iconforge/internal/credentials"
)

var providers = []string{"replicate", "openai", "gemini"}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage provider API keys in the OS keyring",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [provider]",
	Short: "Store an API key read from stdin (provider defaults to replicate)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := providerArg(args)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Paste the %s API key and press Enter: ", provider)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read key: %w", err)
		}

		if err := credentials.Store(provider, strings.TrimSpace(line)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %s key in the keyring\n", provider)
		return nil
	},
}

var tokenDeleteCmd = &cobra.Command{
	Use:   "delete [provider]",
	Short: "Remove a stored API key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := providerArg(args)
		if err != nil {
			return err
		}
		if err := credentials.Delete(provider); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s key\n", provider)
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd, tokenDeleteCmd)
	rootCmd.AddCommand(tokenCmd)
}

func providerArg(args []string) (string, error) {
	if len(args) == 0 {
		return "replicate", nil
	}
	if !slices.Contains(providers, args[0]) {
		return "", fmt.Errorf("unknown provider %q (valid: %s)", args[0], strings.Join(providers, ", "))
	}
	return args[0], nil
}
