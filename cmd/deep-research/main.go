// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the deep-research CLI.
// The tool answers two kinds of input: a stock ticker, which is resolved to
// a company and researched, or a general question, which is researched
// as-is. Run a single turn with the research subcommand or serve the
// browser chat widget with serve.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deep-research/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the deep-research CLI.
var rootCmd = &cobra.Command{
	Use:   "deep-research",
	Short: "Claude-driven research assistant for tickers and topics",
	Long: `deep-research runs a fixed research pipeline over a user query: classify
the input as a stock ticker or a general question, run one discovery search
to plan research angles, deep-dive each angle with one search and one
extraction pass, then synthesize a structured report with attributed
findings.

Run one turn from the command line with the research subcommand, serve the
browser chat widget with serve, or browse past reports with history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./deep-research.yaml or ~/.config/deep-research/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("deep-research")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "deep-research"))
		}
	}

	viper.SetEnvPrefix("DEEP_RESEARCH")
	viper.AutomaticEnv()

	viper.SetDefault("ai.model", "claude-sonnet-4-5-20250929")
	viper.SetDefault("ai.max_tokens", 4096)
	viper.SetDefault("search.backend", "duckduckgo")
	viper.SetDefault("search.rate_per_second", 1.0)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("archive.enabled", true)
	viper.SetDefault("archive.dir", "archive")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
