package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dorcha-inc/glyphart"
)

// newSwatchCmd creates the swatch command
func newSwatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swatch",
		Short: "Print the 216-color cube the art is drawn with",
		Long: `Print the xterm 6x6x6 color cube as six faces, one per red level, with
green increasing downwards and blue to the right. Useful for checking
that a terminal renders 256-color escapes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), glyphart.Swatch()); err != nil {
				return fmt.Errorf("failed to write swatch: %w", err)
			}
			return nil
		},
	}
}
