package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "deep-research/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds settings for the hosted completion endpoint. Absence of the
// API key is a fatal startup condition.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the completion length (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchBackend identifies the web search engine.
type SearchBackend string

const (
	BackendDuckDuckGo SearchBackend = "duckduckgo"
	BackendTavily     SearchBackend = "tavily"
)

// SearchConfig holds settings for the web search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the search engine: duckduckgo (default, no key) or tavily.
	Backend SearchBackend `json:"backend" yaml:"backend"`

	// APIKey authenticates against backends that require one (Tavily).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the maximum number of results per search call (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RatePerSecond throttles successive search calls within one turn
	// (default 1). Zero disables throttling.
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`
}

// FetchConfig holds settings for deep-dive page content fetching.
type FetchConfig struct {
	// Timeout is the per-page fetch timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxContentBytes caps extracted page text (default 5000).
	MaxContentBytes int `json:"max_content_bytes" yaml:"max_content_bytes"`
}

// ResearchConfig holds pipeline-level knobs.
type ResearchConfig struct {
	// MinAngles and MaxAngles bound the research plan (defaults 3 and 4).
	// A plan outside these bounds is treated as a schema failure.
	MinAngles int `json:"min_angles" yaml:"min_angles"`
	MaxAngles int `json:"max_angles" yaml:"max_angles"`

	// DiscoveryResults is the result cap for the single discovery search (default 3).
	DiscoveryResults int `json:"discovery_results" yaml:"discovery_results"`

	// AngleResults is the result cap for each deep-dive search (default 3).
	AngleResults int `json:"angle_results" yaml:"angle_results"`

	// FetchPages enables readability page fetches during deep dives. When a
	// fetch fails the snippet is used instead.
	FetchPages bool `json:"fetch_pages" yaml:"fetch_pages"`
}

// ArchiveConfig holds settings for the optional report archive. The archive is
// an append-only audit log; the pipeline never reads from it, so each research
// turn stays self-contained.
type ArchiveConfig struct {
	// Enabled turns the archive on (default off).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory holding the SQLite database (default "archive").
	Dir string `json:"dir" yaml:"dir"`
}

// ServerConfig holds settings for the browser chat UI.
type ServerConfig struct {
	// Addr is the listen address (default "localhost:8080").
	Addr string `json:"addr" yaml:"addr"`

	// LogLevel sets the server log verbosity (default "info").
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	AI       AIConfig       `json:"ai" yaml:"ai"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Research ResearchConfig `json:"research" yaml:"research"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
