package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/resilio/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "resilio",
	Short: "Autonomy & resilience training in the terminal",
	Long: `Resilio is an interactive e-learning module on autonomy and resilience.

Eight short sections: self-assessment, scenarios, priorities, confidence,
support network, a stress simulation, breathing and a wrap-up debrief.
Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY
to have the wrap-up debrief written by a model.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/resilio/config.yaml)")
	rootCmd.PersistentFlags().String("content", "", "Path to a module content YAML file (default: embedded module)")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (default: no logging)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
}

// loadConfig reads the config file and environment, then applies any
// flags given on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("content"); v != "" {
		cfg.Content.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.Log.File = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}
