package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the desktop browser string sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds the application configuration.
type Config struct {
	BaseURL  string `mapstructure:"BASE_URL"`
	ListPath string `mapstructure:"LIST_PATH"`

	MaxProjects       int    `mapstructure:"MAX_PROJECTS"`
	RequestTimeoutSec int    `mapstructure:"REQUEST_TIMEOUT"`
	RequestDelayMS    int    `mapstructure:"REQUEST_DELAY_MS"`
	UserAgents        string `mapstructure:"USER_AGENTS"`
	Proxies           string `mapstructure:"PROXIES"`
	RenderJS          bool   `mapstructure:"RENDER_JS"`

	ListTableSelector       string `mapstructure:"LIST_TABLE_SELECTOR"`
	DetailContainerSelector string `mapstructure:"DETAIL_CONTAINER_SELECTOR"`
	DetailFieldSelector     string `mapstructure:"DETAIL_FIELD_SELECTOR"`

	OutputPath string `mapstructure:"OUTPUT_PATH"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	PostgresURL         string `mapstructure:"POSTGRES_URL"`
	RedisAddr           string `mapstructure:"REDIS_ADDR"`
	DetailCacheTTLHours int    `mapstructure:"DETAIL_CACHE_TTL_HOURS"`

	ServerPort string `mapstructure:"SERVER_PORT"`
}

var keys = []string{
	"BASE_URL", "LIST_PATH", "MAX_PROJECTS", "REQUEST_TIMEOUT", "REQUEST_DELAY_MS",
	"USER_AGENTS", "PROXIES", "RENDER_JS", "LIST_TABLE_SELECTOR",
	"DETAIL_CONTAINER_SELECTOR", "DETAIL_FIELD_SELECTOR", "OUTPUT_PATH",
	"LOG_LEVEL", "LOG_FORMAT", "POSTGRES_URL", "REDIS_ADDR",
	"DETAIL_CACHE_TTL_HOURS", "SERVER_PORT",
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit env file path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about, so bind every key explicitly.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	_ = v.ReadInConfig()

	v.SetDefault("BASE_URL", "https://rera.odisha.gov.in")
	v.SetDefault("LIST_PATH", "/projects/project-list")
	v.SetDefault("MAX_PROJECTS", 6)
	v.SetDefault("REQUEST_TIMEOUT", 10)
	v.SetDefault("REQUEST_DELAY_MS", 1000)
	v.SetDefault("USER_AGENTS", DefaultUserAgent)
	v.SetDefault("PROXIES", "")
	v.SetDefault("RENDER_JS", false)
	v.SetDefault("LIST_TABLE_SELECTOR", "table.table")
	v.SetDefault("DETAIL_CONTAINER_SELECTOR", "div.tab-content")
	v.SetDefault("DETAIL_FIELD_SELECTOR", "p")
	v.SetDefault("OUTPUT_PATH", "odisha_rera_projects.csv")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DETAIL_CACHE_TTL_HOURS", 48)
	v.SetDefault("SERVER_PORT", "8080")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would make every run come back empty. An
// unparsable selector matches nothing at scrape time.
func (c *Config) Validate() error {
	selectors := []struct{ key, value string }{
		{"LIST_TABLE_SELECTOR", c.ListTableSelector},
		{"DETAIL_CONTAINER_SELECTOR", c.DetailContainerSelector},
		{"DETAIL_FIELD_SELECTOR", c.DetailFieldSelector},
	}
	for _, sel := range selectors {
		if _, err := cascadia.Compile(sel.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", sel.key, sel.value, err)
		}
	}
	if c.MaxProjects < 0 {
		return fmt.Errorf("invalid MAX_PROJECTS %d: must not be negative", c.MaxProjects)
	}
	return nil
}

// ListURL is the absolute address of the project listing page.
func (c *Config) ListURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.ListPath
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

func (c *Config) DetailCacheTTL() time.Duration {
	return time.Duration(c.DetailCacheTTLHours) * time.Hour
}

// UserAgentList splits USER_AGENTS on "|" since UA strings contain commas.
func (c *Config) UserAgentList() []string {
	return splitList(c.UserAgents, "|")
}

func (c *Config) ProxyList() []string {
	return splitList(c.Proxies, ",")
}

func splitList(raw, sep string) []string {
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
