package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/resilio/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and validate module content files",
}

var contentValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a content file (default: the embedded module)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		m, err := content.Load(path)
		if err != nil {
			return err
		}
		name := path
		if name == "" {
			name = "embedded module"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections)\n", name, len(m.Sections))
		return nil
	},
}

var contentDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the module content, as a starting point for a custom file",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		path, _ := cmd.Flags().GetString("content")
		out := cmd.OutOrStdout()

		switch format {
		case "yaml":
			data := content.DefaultYAML()
			if path != "" {
				var err error
				if data, err = os.ReadFile(path); err != nil {
					return fmt.Errorf("read content: %w", err)
				}
			}
			_, err := out.Write(data)
			return err
		case "json":
			m, err := content.Load(path)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(m)
		}
		return fmt.Errorf("invalid format %q: must be yaml or json", format)
	},
}

func init() {
	contentDumpCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")

	contentCmd.AddCommand(contentValidateCmd)
	contentCmd.AddCommand(contentDumpCmd)
}
