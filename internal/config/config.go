package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the name of the config file inside the user config directory
const FileName = "ai-gcm.toml"

type Config struct {
	Ollama     OllamaConfig     `toml:"ollama"`
	Models     ModelsConfig     `toml:"models"`
	Generation GenerationConfig `toml:"generation"`
	UI         UIConfig         `toml:"ui"`
}

type OllamaConfig struct {
	Endpoint string   `toml:"endpoint"`
	Timeout  Duration `toml:"timeout"`
}

type ModelsConfig struct {
	Summary string `toml:"summary"`
	Commit  string `toml:"commit"`
}

type GenerationConfig struct {
	Retries      int     `toml:"retries"`
	MaxDiffBytes int     `toml:"max_diff_bytes"`
	Temperature  float64 `toml:"temperature"`
}

type UIConfig struct {
	Confirm bool `toml:"confirm"`
	Color   bool `toml:"color"`
}

// Duration is a time.Duration written as a Go duration string ("90s") in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			Endpoint: "http://localhost:11434",
			Timeout:  Duration{120 * time.Second},
		},
		Models: ModelsConfig{
			Summary: "qwen2.5-coder",
			Commit:  "llama3.2",
		},
		Generation: GenerationConfig{
			Retries:      2,
			MaxDiffBytes: 60000,
			Temperature:  0.2,
		},
		UI: UIConfig{
			Confirm: true,
			Color:   true,
		},
	}
}

// Path returns the default config file location
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// Load reads the config at path (the default location when path is empty),
// then applies environment overrides. A missing file yields the defaults.
// The file is never written.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			cfg := DefaultConfig()
			cfg.applyEnv(os.Getenv)
			return cfg, cfg.Validate()
		}
		path = p
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Defaults only
	default:
		return nil, err
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays OLLAMA_HOST and AIGCM_MODEL
func (c *Config) applyEnv(getenv func(string) string) {
	if host := strings.TrimSpace(getenv("OLLAMA_HOST")); host != "" {
		c.Ollama.Endpoint = host
	}
	if model := strings.TrimSpace(getenv("AIGCM_MODEL")); model != "" {
		c.Models.Summary = model
		c.Models.Commit = model
	}
	c.Ollama.Endpoint = NormalizeEndpoint(c.Ollama.Endpoint)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.Ollama.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid ollama.endpoint %q: must be an http(s) URL", c.Ollama.Endpoint)
	}
	if c.Ollama.Timeout.Duration <= 0 {
		return fmt.Errorf("invalid ollama.timeout %s: must be positive", c.Ollama.Timeout.Duration)
	}
	if c.Models.Summary == "" || c.Models.Commit == "" {
		return fmt.Errorf("models.summary and models.commit must not be empty")
	}
	if c.Generation.Retries < 0 || c.Generation.Retries > 10 {
		return fmt.Errorf("invalid generation.retries %d: must be between 0 and 10", c.Generation.Retries)
	}
	if c.Generation.MaxDiffBytes < 0 {
		return fmt.Errorf("invalid generation.max_diff_bytes %d: must not be negative", c.Generation.MaxDiffBytes)
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("invalid generation.temperature %v: must be between 0 and 2", c.Generation.Temperature)
	}
	return nil
}

// NormalizeEndpoint accepts OLLAMA_HOST forms such as "0.0.0.0:11434" or
// "localhost" and returns a base URL without a trailing slash
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return endpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	if u.Port() == "" && u.Scheme == "http" {
		u.Host = u.Hostname() + ":11434"
	}
	return strings.TrimRight(u.String(), "/")
}

// Encode renders the config as TOML, used by `ai-gcm config` to show effective settings
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
