// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/archive"
	"github.com/pdiddy/deep-research/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived reports",
	Long: `History lists past research runs from the local archive. Use the show
subcommand to print a single archived report.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past research runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one archived report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	for _, cmd := range []*cobra.Command{historyCmd, historyListCmd} {
		cmd.Flags().Int("limit", 20, "maximum number of runs to list")
		cmd.Flags().Bool("json", false, "output as JSON")
	}
	historyShowCmd.Flags().Bool("json", false, "output the structured report as JSON")

	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func openArchive() (*archive.Store, error) {
	cfg := loadConfig()
	return archive.Open(cfg.Archive)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-8s  %-24s  %s\n", "ID", "Date", "Type", "Query", "Title")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, e := range entries {
		query := e.Query
		if len(query) > 24 {
			query = query[:21] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-8s  %-24s  %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.InputType, query, e.Title)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run ID %q", args[0])
	}

	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entry.Report)
	}

	fmt.Println(render.Markdown(entry.Report))
	return nil
}
