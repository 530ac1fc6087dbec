// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/deep-research/internal/ai"
	"github.com/pdiddy/deep-research/internal/fetch"
	"github.com/pdiddy/deep-research/internal/research"
	"github.com/pdiddy/deep-research/internal/search"
	"github.com/pdiddy/deep-research/pkg/types"
)

// loadConfig assembles the pipeline configuration from the config file,
// DEEP_RESEARCH_* environment variables, and .secrets/. Secrets fill in any
// key the config leaves empty.
func loadConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		AI: types.AIConfig{
			Model:      viper.GetString("ai.model"),
			APIKey:     secretDefault("anthropic-api-key", viper.GetString("ai.api_key")),
			MaxTokens:  viper.GetInt("ai.max_tokens"),
			MaxRetries: viper.GetInt("ai.max_retries"),
		},
		Search: types.SearchConfig{
			Backend:       types.SearchBackend(viper.GetString("search.backend")),
			APIKey:        secretDefault("tavily-api-key", viper.GetString("search.api_key")),
			MaxResults:    viper.GetInt("search.max_results"),
			RatePerSecond: viper.GetFloat64("search.rate_per_second"),
		},
		Fetch: types.FetchConfig{
			Timeout:         viper.GetDuration("fetch.timeout"),
			MaxContentBytes: viper.GetInt("fetch.max_content_bytes"),
		},
		Research: types.ResearchConfig{
			MinAngles:        viper.GetInt("research.min_angles"),
			MaxAngles:        viper.GetInt("research.max_angles"),
			DiscoveryResults: viper.GetInt("research.discovery_results"),
			AngleResults:     viper.GetInt("research.angle_results"),
			FetchPages:       viper.GetBool("research.fetch_pages"),
		},
		Archive: types.ArchiveConfig{
			Enabled: viper.GetBool("archive.enabled"),
			Dir:     viper.GetString("archive.dir"),
		},
		Server: types.ServerConfig{
			Addr:     viper.GetString("server.addr"),
			LogLevel: viper.GetString("server.log_level"),
		},
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 15 * time.Second
	}
	return cfg
}

// newPipeline wires the AI client, search client, and page fetcher into a
// runnable pipeline. A missing Anthropic API key fails here, before any
// network activity.
func newPipeline(cfg types.PipelineConfig) (*research.Pipeline, error) {
	if cfg.AI.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key not set: add .secrets/anthropic-api-key or set ai.api_key in the config file")
	}

	aiClient, err := ai.NewClient(cfg.AI, nil)
	if err != nil {
		return nil, fmt.Errorf("building AI client: %w", err)
	}

	searchClient, err := search.New(cfg.Search)
	if err != nil {
		return nil, fmt.Errorf("building search client: %w", err)
	}

	var fetcher fetch.Fetcher
	if cfg.Research.FetchPages {
		fetcher = fetch.NewReadabilityFetcher(cfg.Fetch)
	}

	return research.New(aiClient, searchClient, fetcher, cfg.Research), nil
}
