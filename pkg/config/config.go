package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for meshquery-engine.
// Configuration can come from YAML file (config.yaml) or environment
// variables; environment variables override YAML values. Secrets
// (warehouse password, AI API key) must only come from environment
// variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8089"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Warehouse holds the connection to the tabular data source.
	Warehouse WarehouseConfig `yaml:"warehouse"`

	// AI holds the optional completion provider settings.
	AI AIConfig `yaml:"ai"`

	// Query holds interpretation and synthesis defaults.
	Query QueryConfig `yaml:"query"`
}

// WarehouseConfig holds the data source connection settings.
// Type selects the adapter: "dremio", "postgres" or "mssql".
type WarehouseConfig struct {
	Type     string `yaml:"type" env:"WAREHOUSE_TYPE" env-default:"dremio"`
	Endpoint string `yaml:"endpoint" env:"WAREHOUSE_ENDPOINT" env-default:"http://localhost:9047"`
	Host     string `yaml:"host" env:"WAREHOUSE_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"WAREHOUSE_PORT" env-default:"5432"`
	Database string `yaml:"database" env:"WAREHOUSE_DATABASE" env-default:""`
	User     string `yaml:"user" env:"WAREHOUSE_USER" env-default:""`
	Password string `yaml:"-" env:"WAREHOUSE_PASSWORD"` // Secret - not in YAML
	SSLMode  string `yaml:"ssl_mode" env:"WAREHOUSE_SSLMODE" env-default:"disable"`
}

// AIConfig holds completion provider settings. Provider selects the
// client: "openai" (any OpenAI-compatible endpoint) or "anthropic".
// Leaving APIKey empty disables the generative strategy; the engine then
// runs on heuristics alone.
type AIConfig struct {
	Provider    string  `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	Endpoint    string  `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"https://api.openai.com/v1"`
	Model       string  `yaml:"model" env:"AI_MODEL" env-default:"gpt-4o-mini"`
	APIKey      string  `yaml:"-" env:"AI_API_KEY"` // Secret - not in YAML
	MaxTokens   int     `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"500"`
	Temperature float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.1"`
}

// IsAvailable returns true if a completion provider is configured.
func (c *AIConfig) IsAvailable() bool {
	return c.APIKey != "" && c.Model != ""
}

// QueryConfig holds interpretation and synthesis defaults.
type QueryConfig struct {
	// PreferredSource marks the schema segment the resolver falls back to
	// when no token matches the catalog.
	PreferredSource string `yaml:"preferred_source" env:"QUERY_PREFERRED_SOURCE" env-default:"DataMesh"`
	// DisplayLimit bounds "show me" style SELECTs.
	DisplayLimit int `yaml:"display_limit" env:"QUERY_DISPLAY_LIMIT" env-default:"100"`
	// SampleLimit bounds generic fallback SELECTs.
	SampleLimit int `yaml:"sample_limit" env:"QUERY_SAMPLE_LIMIT" env-default:"10"`
	// PromptTableLimit bounds how many catalog entries go into a prompt.
	PromptTableLimit int `yaml:"prompt_table_limit" env:"QUERY_PROMPT_TABLE_LIMIT" env-default:"10"`
	// PromptWikiLimit bounds how many wiki snippets go into a prompt.
	PromptWikiLimit int `yaml:"prompt_wiki_limit" env:"QUERY_PROMPT_WIKI_LIMIT" env-default:"3"`
	// SuggestLimit bounds the autocomplete result count.
	SuggestLimit int `yaml:"suggest_limit" env:"QUERY_SUGGEST_LIMIT" env-default:"10"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on
// the returned Config. If config.yaml is missing, environment variables
// and defaults alone apply.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		// Fall back to env-only when there is no config file.
		if !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Warehouse.Type {
	case "dremio", "postgres", "mssql":
	default:
		return fmt.Errorf("unsupported warehouse type %q", c.Warehouse.Type)
	}
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported AI provider %q", c.AI.Provider)
	}
	if c.Query.DisplayLimit <= 0 || c.Query.SampleLimit <= 0 {
		return fmt.Errorf("query limits must be positive")
	}
	return nil
}

// ConnectionString returns a connection string for SQL warehouse types.
func (c *WarehouseConfig) ConnectionString() string {
	switch c.Type {
	case "mssql":
		return fmt.Sprintf(
			"sqlserver://%s:%s@%s:%d?database=%s",
			c.User, c.Password, c.Host, c.Port, c.Database,
		)
	default:
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
		)
	}
}
