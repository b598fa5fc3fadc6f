package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the companysearch API configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Engine        EngineConfig        `yaml:"engine"`
	Search        SearchConfig        `yaml:"search"`
	Tags          TagsConfig          `yaml:"tags"`
	Regions       []RegionConfig      `yaml:"regions"`
	Understanding UnderstandingConfig `yaml:"understanding"`
	// Synonyms maps a group id to terms the engine treats as equivalent on the industry field.
	Synonyms map[string][]string `yaml:"synonyms"`
	Auth     AuthConfig          `yaml:"auth"`
	Logging  LoggingConfig       `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Engine drivers.
const (
	EngineRedis = "redis"
	EngineBleve = "bleve"
)

// EngineConfig holds search engine settings.
type EngineConfig struct {
	Driver   string   `yaml:"driver"` // redis, bleve (default: redis)
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	Index    string   `yaml:"index"`
	// BlevePath is the bleve index directory. Empty keeps the index in memory.
	BlevePath        string  `yaml:"bleve_path"`
	TimeoutMS        int     `yaml:"timeout_ms"`
	MaxRetries       int     `yaml:"max_retries"` // 0 = default (2), -1 = no retries
	MaxQPS           float64 `yaml:"max_qps"`     // 0 = unlimited
	ReadinessTimeout int     `yaml:"readiness_timeout_sec"`
	// CreateIndex creates the index and synonym groups on serve startup.
	CreateIndex bool `yaml:"create_index"`
}

// SearchConfig holds search pipeline settings.
type SearchConfig struct {
	MaxWindow     int  `yaml:"max_window"`
	FacetSize     int  `yaml:"facet_size"`
	FormatNumbers bool `yaml:"format_numbers"`
}

// Tag store drivers.
const (
	TagsMemory   = "memory"
	TagsRedis    = "redis"
	TagsBadger   = "badger"
	TagsPostgres = "postgres"
)

// TagsConfig holds tag store settings.
type TagsConfig struct {
	Driver           string `yaml:"driver"` // memory, redis, badger, postgres (default: memory)
	BadgerPath       string `yaml:"badger_path"`
	PostgresDSN      string `yaml:"postgres_dsn"`
	PostgresMaxConns int32  `yaml:"postgres_max_conns"`
	KeyPrefix        string `yaml:"key_prefix"`
}

// RegionConfig declares one region. A non-empty regions list replaces the built-in set.
type RegionConfig struct {
	ID      string   `yaml:"id"`
	Label   string   `yaml:"label"`
	Locale  string   `yaml:"locale"`
	Country string   `yaml:"country"`
	Aliases []string `yaml:"aliases"`
}

// UnderstandingConfig extends the free-text vocabulary.
type UnderstandingConfig struct {
	Industries map[string][]string `yaml:"industries"`
	Localities []string            `yaml:"localities"`
	Countries  map[string]string   `yaml:"countries"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates one YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration after ${VAR:-default} substitution.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Engine.Driver == "" {
		c.Engine.Driver = EngineRedis
	}
	if c.Engine.Index == "" {
		c.Engine.Index = "companies"
	}
	if c.Engine.TimeoutMS <= 0 {
		c.Engine.TimeoutMS = 2000
	}
	if c.Engine.ReadinessTimeout <= 0 {
		c.Engine.ReadinessTimeout = 10
	}
	if c.Search.MaxWindow <= 0 {
		c.Search.MaxWindow = 1000
	}
	if c.Search.FacetSize <= 0 {
		c.Search.FacetSize = 20
	}
	if c.Tags.Driver == "" {
		c.Tags.Driver = TagsMemory
	}
	if c.Tags.KeyPrefix == "" {
		c.Tags.KeyPrefix = "companysearch:tags:"
	}
	if c.Tags.PostgresMaxConns <= 0 {
		c.Tags.PostgresMaxConns = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.validateEngine(); err != nil {
		return err
	}
	if c.Search.FacetSize > 100 {
		return fmt.Errorf("search.facet_size must not exceed 100, got %d", c.Search.FacetSize)
	}
	if err := c.validateTags(); err != nil {
		return err
	}
	if err := validateRegions(c.Regions); err != nil {
		return err
	}
	for id, terms := range c.Synonyms {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("synonyms: group id must not be empty")
		}
		if len(terms) < 2 {
			return fmt.Errorf("synonyms.%s must list at least 2 terms", id)
		}
	}
	for phrase := range c.Understanding.Industries {
		if strings.TrimSpace(phrase) == "" {
			return fmt.Errorf("understanding.industries: phrase must not be empty")
		}
	}
	return nil
}

func (c *Config) validateEngine() error {
	switch c.Engine.Driver {
	case EngineRedis:
		if len(c.Engine.Addrs) == 0 {
			return fmt.Errorf("engine.addrs is required for driver %q", EngineRedis)
		}
	case EngineBleve:
	default:
		return fmt.Errorf("engine.driver must be %q or %q, got %q", EngineRedis, EngineBleve, c.Engine.Driver)
	}
	if c.Engine.MaxRetries < -1 {
		return fmt.Errorf("engine.max_retries must be >= -1, got %d", c.Engine.MaxRetries)
	}
	if c.Engine.MaxQPS < 0 {
		return fmt.Errorf("engine.max_qps must not be negative, got %g", c.Engine.MaxQPS)
	}
	return nil
}

func (c *Config) validateTags() error {
	switch c.Tags.Driver {
	case TagsMemory:
	case TagsRedis:
		if c.Engine.Driver != EngineRedis {
			return fmt.Errorf("tags.driver %q requires engine.driver %q", TagsRedis, EngineRedis)
		}
	case TagsBadger:
		if c.Tags.BadgerPath == "" {
			return fmt.Errorf("tags.badger_path is required for driver %q", TagsBadger)
		}
	case TagsPostgres:
		if c.Tags.PostgresDSN == "" {
			return fmt.Errorf("tags.postgres_dsn is required for driver %q", TagsPostgres)
		}
	default:
		return fmt.Errorf("tags.driver must be one of memory, redis, badger, postgres, got %q", c.Tags.Driver)
	}
	return nil
}

func validateRegions(regions []RegionConfig) error {
	seen := make(map[string]struct{}, len(regions))
	for i, r := range regions {
		if r.ID == "" || r.Label == "" || r.Country == "" {
			return fmt.Errorf("regions[%d]: id, label and country are required", i)
		}
		if _, err := language.Parse(r.Locale); err != nil {
			return fmt.Errorf("regions[%d].locale %q: %w", i, r.Locale, err)
		}
		id := strings.ToLower(r.ID)
		if _, dup := seen[id]; dup {
			return fmt.Errorf("regions[%d]: duplicate id %q", i, r.ID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
