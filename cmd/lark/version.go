package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lark/internal/version"
)

var (
	commitColor  = color.New(color.FgRed, color.Bold)
	dateColor    = color.New(color.FgCyan, color.Bold)
	unknownColor = color.New(color.FgMagenta)
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show lark build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lark %s\n", v)
		fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", valueOrUnknown(version.GitCommit, commitColor))
		fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", valueOrUnknown(version.BuildDate, dateColor))
		return nil
	},
}

func valueOrUnknown(s string, col *color.Color) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownColor.Sprint("unknown")
	}
	return col.Sprint(s)
}
