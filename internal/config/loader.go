package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name searched in the current
// and home directories.
const DefaultConfigFile = ".scamcheck"

// Environment variable names. The SCAMCHECK_ forms take precedence.
const (
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvBaseURL         = "GEMINI_BASE_URL"
	EnvScamcheckAPIKey = "SCAMCHECK_API_KEY"
	EnvScamcheckURL    = "SCAMCHECK_BASE_URL"
	EnvScamcheckModel  = "SCAMCHECK_MODEL"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the YAML configuration file.
type File struct {
	Gemini GeminiSection `yaml:"gemini,omitempty"`
	Limits LimitsSection `yaml:"limits,omitempty"`
	Fetch  FetchSection  `yaml:"fetch,omitempty"`
	Serve  ServeSection  `yaml:"serve,omitempty"`
}

// GeminiSection configures the classifier.
type GeminiSection struct {
	APIKey  string        `yaml:"apiKey,omitempty"`
	BaseURL string        `yaml:"baseURL,omitempty"`
	Model   string        `yaml:"model,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// LimitsSection configures input limits.
type LimitsSection struct {
	MaxTextLength int   `yaml:"maxTextLength,omitempty"`
	MaxImageSize  int64 `yaml:"maxImageSize,omitempty"`
}

// FetchSection configures the page fetch for URL checks.
type FetchSection struct {
	// Enabled is a pointer so that an explicit false can be told apart
	// from an absent key.
	Enabled     *bool         `yaml:"enabled,omitempty"`
	Proxy       string        `yaml:"proxy,omitempty"`
	Tor         bool          `yaml:"tor,omitempty"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
	UserAgent   string        `yaml:"userAgent,omitempty"`
	MaxBodySize int64         `yaml:"maxBodySize,omitempty"`
}

// ServeSection configures the browser UI server.
type ServeSection struct {
	Listen string `yaml:"listen,omitempty"`
}

// LoadConfigFile reads and decodes the YAML file at path.
// A missing file yields ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile returns the first existing configuration file from:
//  1. configPath, when given
//  2. .scamcheck in the current directory
//  3. .scamcheck in the home directory
//  4. config.yaml in the XDG config directory
//
// It returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, XDGConfigFile())

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// ApplyFile copies every value set in f onto c.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	setString(&c.APIKey, f.Gemini.APIKey)
	setString(&c.BaseURL, f.Gemini.BaseURL)
	setString(&c.Model, f.Gemini.Model)
	if f.Gemini.Timeout > 0 {
		c.Timeout = f.Gemini.Timeout
	}
	if f.Limits.MaxTextLength > 0 {
		c.MaxTextLength = f.Limits.MaxTextLength
	}
	if f.Limits.MaxImageSize > 0 {
		c.MaxImageSize = f.Limits.MaxImageSize
	}
	if f.Fetch.Enabled != nil {
		c.FetchPage = *f.Fetch.Enabled
	}
	setString(&c.ProxyAddress, f.Fetch.Proxy)
	if f.Fetch.Tor {
		c.UseTor = true
	}
	if f.Fetch.Timeout > 0 {
		c.FetchTimeout = f.Fetch.Timeout
	}
	setString(&c.UserAgent, f.Fetch.UserAgent)
	if f.Fetch.MaxBodySize > 0 {
		c.MaxBodySize = f.Fetch.MaxBodySize
	}
	setString(&c.ListenAddr, f.Serve.Listen)
}

// ApplyEnv overlays environment variables read through getenv.
// Passing os.Getenv is the normal use; tests pass a map lookup.
func (c *Config) ApplyEnv(getenv func(string) string) {
	setString(&c.APIKey, getenv(EnvAPIKey))
	setString(&c.APIKey, getenv(EnvScamcheckAPIKey))
	setString(&c.BaseURL, getenv(EnvBaseURL))
	setString(&c.BaseURL, getenv(EnvScamcheckURL))
	setString(&c.Model, getenv(EnvScamcheckModel))
}

// Load builds a Config from defaults, the config file found by
// FindConfigFile and the environment. An explicit but missing
// configPath is reported as ErrConfigNotFound.
func Load(configPath string, getenv func(string) string) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = configPath

	path := FindConfigFile(configPath)
	if path == "" && configPath != "" {
		return nil, ErrConfigNotFound
	}
	if path != "" {
		f, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg.ApplyFile(f)
	}

	cfg.ApplyEnv(getenv)
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
