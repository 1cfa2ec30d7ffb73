package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/llm"
	"github.com/abhisek/resilio/internal/logging"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and test the LLM provider used for the debrief",
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved LLM provider settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		llmCfg, ok := cfg.LLMConfig()
		if !ok {
			fmt.Fprintln(out, "No LLM provider configured.")
			return nil
		}
		active := llmCfg.Active()
		fmt.Fprintf(out, "Provider:  %s\n", llmCfg.Provider)
		fmt.Fprintf(out, "Model:     %s\n", active.Model)
		fmt.Fprintf(out, "API key:   %s\n", maskKey(active.APIKey))
		if active.BaseURL != "" {
			fmt.Fprintf(out, "Base URL:  %s\n", active.BaseURL)
		}
		fmt.Fprintf(out, "Timeout:   %s\n", llmCfg.Timeout)
		if err := llmCfg.Validate(); err != nil {
			fmt.Fprintf(out, "Problem:   %v\n", err)
		}
		return nil
	},
}

var llmPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Send one debrief request and show the recorded call",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.New(cfg.Log, cfg.Env)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		llmCfg, ok := cfg.LLMConfig()
		if !ok {
			return fmt.Errorf("no LLM provider configured")
		}
		m, err := content.Load(cfg.Content.Path)
		if err != nil {
			return err
		}

		ctx := context.Background()
		j, err := journal.Open(ctx)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer j.Close()

		provider, err := llm.NewProvider(ctx, llmCfg, j, logger)
		if err != nil {
			return err
		}
		svc := newDebriefService(provider, llmCfg, logger)
		_, genErr := svc.Generate(ctx, sampleInput(m, -1))

		requests, err := j.LLMRequests(ctx, 0)
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}
		printRequests(cmd.OutOrStdout(), requests)
		if genErr != nil {
			return genErr
		}
		return nil
	},
}

// printRequests writes one row per call plus the estimated cost.
func printRequests(out io.Writer, requests []journal.LLMRequest) {
	fmt.Fprintf(out, "%-5s  %-8s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
		"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
	fmt.Fprintln(out, strings.Repeat("─", 88))

	var totalCost float64
	var priced bool
	for _, r := range requests {
		ok := "✓"
		if !r.Success {
			ok = "✗ " + r.ErrorMessage
		}
		fmt.Fprintf(out, "%-5d  %-8s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
			r.ID,
			r.At.Local().Format("15:04:05"),
			truncate(r.Purpose, 10),
			truncate(r.Model, 28),
			r.InputTokens,
			r.OutputTokens,
			r.LatencyMs,
			ok,
		)
		if c, found := llm.EstimateCost(r.Model, r.InputTokens, r.OutputTokens); found {
			totalCost += c
			priced = true
		}
	}
	if priced {
		fmt.Fprintln(out, strings.Repeat("─", 88))
		fmt.Fprintf(out, "Estimated cost: %s\n", formatCost(totalCost))
	}
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmCmd.AddCommand(llmConfigCmd)
	llmCmd.AddCommand(llmPingCmd)
}
