// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"iconforge/internal/style"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the preset styles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
		for _, d := range style.All() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}
