package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/resilio/internal/content"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the sections of the module",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("content")
		m, err := content.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, m.Title)
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, s := range m.Sections {
			fmt.Fprintf(out, "%2d  %-12s  %s\n", s.Number, s.ID, s.Title)
			if s.Summary != "" {
				fmt.Fprintf(out, "    %s\n", s.Summary)
			}
		}
		return nil
	},
}
