package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/resilio/internal/content"
	"github.com/abhisek/resilio/internal/debrief"
	"github.com/abhisek/resilio/internal/journal"
	"github.com/abhisek/resilio/internal/logging"
	"github.com/abhisek/resilio/internal/progress"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the wrap-up debrief for sample results (no TUI)",
	Long: `Build the wrap-up debrief for a made-up set of section results.

This is a developer tool for checking debrief quality: it uses the configured
LLM provider when there is one, and the built-in debrief otherwise.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntP("completed", "n", -1, "Number of sections to mark completed (default: all)")
	previewCmd.Flags().Bool("offline", false, "Skip the model and show the built-in debrief")
}

func runPreview(cmd *cobra.Command, args []string) error {
	completed, _ := cmd.Flags().GetInt("completed")
	offline, _ := cmd.Flags().GetBool("offline")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log, cfg.Env)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

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

	var svc *debrief.Service
	if offline {
		svc = debrief.NewService(nil, debrief.DefaultConfig(), logger)
	} else {
		provider, llmCfg := buildProvider(ctx, cfg, j, logger)
		svc = newDebriefService(provider, llmCfg, logger)
	}

	in := sampleInput(m, completed)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sample: %d of %d sections completed\n\n", in.CompletedCount(), len(in.Sections))
	printDebrief(out, svc.Build(ctx, in), svc.ModelID())

	requests, err := j.LLMRequests(ctx, 0)
	if err != nil {
		return err
	}
	if len(requests) > 0 {
		fmt.Fprintln(out)
		printRequests(out, requests)
	}
	return nil
}

// sampleScores cycle through strong, middling and weak results so every
// branch of the debrief gets exercised.
var sampleScores = []int{88, 64, 42}

// sampleInput makes up results for the module's sections, wrap-up
// excluded. completed < 0 completes every section.
func sampleInput(m *content.Module, completed int) debrief.Input {
	in := debrief.Input{ModuleTitle: m.Title}
	for _, s := range m.Sections {
		if s.ID == progress.SectionWrapUp {
			continue
		}
		r := debrief.SectionResult{ID: string(s.ID), Title: s.Title, Score: -1}
		if completed < 0 || len(in.Sections) < completed {
			r.Completed = true
			r.Score = sampleScores[len(in.Sections)%len(sampleScores)]
			r.Headline = fmt.Sprintf("Sample result %d/100", r.Score)
		}
		in.Sections = append(in.Sections, r)
	}
	return in
}

func printDebrief(out io.Writer, d debrief.Debrief, model string) {
	source := "built-in rules"
	if d.Source == debrief.SourceLLM {
		source = model
	}
	fmt.Fprintln(out, d.Headline)
	fmt.Fprintln(out, strings.Repeat("─", 60))
	if len(d.Strengths) > 0 {
		fmt.Fprintln(out, "What went well:")
		for _, s := range d.Strengths {
			fmt.Fprintf(out, "  • %s\n", s)
		}
	}
	if len(d.NextSteps) > 0 {
		fmt.Fprintln(out, "Next steps:")
		for _, s := range d.NextSteps {
			fmt.Fprintf(out, "  → %s\n", s)
		}
	}
	fmt.Fprintf(out, "\n(source: %s)\n", source)
}
