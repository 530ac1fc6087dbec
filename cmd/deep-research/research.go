// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/deep-research/internal/archive"
	"github.com/pdiddy/deep-research/internal/render"
	"github.com/pdiddy/deep-research/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Run one research turn and print the report",
	Long: `Research runs the full pipeline for a single query: classify the input
as a ticker or general question, plan research angles from one discovery
search, deep-dive each angle, and synthesize a structured report.

The report prints as Markdown by default; --json and --yaml emit the
structured form instead. Progress goes to stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().Bool("json", false, "output the structured report as JSON")
	researchCmd.Flags().Bool("yaml", false, "output the structured report as YAML")
	researchCmd.Flags().Bool("fetch-pages", false, "fetch full page content during deep dives")
	researchCmd.Flags().Bool("no-archive", false, "skip archiving the finished report")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if fetchPages, _ := cmd.Flags().GetBool("fetch-pages"); fetchPages {
		cfg.Research.FetchPages = true
	}

	pipeline, err := newPipeline(cfg)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	report, classification, err := pipeline.Run(context.Background(), query, func(e research.Event) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Stage, e.Message)
	})
	if err != nil {
		return err
	}

	if noArchive, _ := cmd.Flags().GetBool("no-archive"); cfg.Archive.Enabled && !noArchive {
		store, err := archive.Open(cfg.Archive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "archive unavailable: %v\n", err)
		} else {
			defer store.Close()
			if id, err := store.Save(context.Background(), query, classification, report); err != nil {
				fmt.Fprintf(os.Stderr, "failed to archive report: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "archived as run %d\n", id)
			}
		}
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		return yaml.NewEncoder(os.Stdout).Encode(report)
	}

	fmt.Println(render.Markdown(report))
	return nil
}
