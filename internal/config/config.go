package config

import (
	"net"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is used for XDG directory paths.
	AppName = "scamcheck"

	// DefaultModel is the Gemini model used for classification.
	DefaultModel = "gemini-2.0-flash"

	// DefaultTimeout bounds a single classifier request.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxTextLength is the largest text input accepted, in characters.
	DefaultMaxTextLength = 20000

	// DefaultMaxImageSize is the largest image accepted, in bytes.
	DefaultMaxImageSize = 10 * 1024 * 1024 // 10MB

	// DefaultListenAddr is where `scamcheck serve` listens. Loopback only.
	DefaultListenAddr = "127.0.0.1:8787"

	// DefaultUserAgent is sent when fetching a page for a URL check.
	DefaultUserAgent = "scamcheck/1.0 (+https://github.com/nao1215/scamcheck)"

	// DefaultMaxBodySize limits how much of a fetched page is read.
	DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB

	// DefaultFetchTimeout bounds the page fetch for a URL check.
	DefaultFetchTimeout = 15 * time.Second

	// DefaultTorStartupTimeout is how long the embedded Tor daemon may take
	// to bootstrap.
	DefaultTorStartupTimeout = 3 * time.Minute
)

// Config holds every scamcheck option. It is built once at startup and
// passed down explicitly.
type Config struct {
	// APIKey authenticates against the Gemini API. Empty means unconfigured.
	APIKey string

	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string

	// Model is the Gemini model name.
	Model string

	// Timeout bounds one classifier request.
	Timeout time.Duration

	// MaxTextLength is the largest accepted text input in characters.
	MaxTextLength int

	// MaxImageSize is the largest accepted image in bytes.
	MaxImageSize int64

	// FetchPage enables fetching a snapshot of the page for URL checks.
	FetchPage bool

	// ProxyAddress routes page fetches through a SOCKS5 proxy ("host:port").
	ProxyAddress string

	// UseTor starts an embedded Tor daemon for fetching .onion pages.
	UseTor bool

	// TorStartupTimeout bounds the embedded Tor bootstrap.
	TorStartupTimeout time.Duration

	// FetchTimeout bounds one page fetch.
	FetchTimeout time.Duration

	// UserAgent is sent with page fetches.
	UserAgent string

	// MaxBodySize limits the bytes read from a fetched page.
	MaxBodySize int64

	// ListenAddr is the serve address.
	ListenAddr string

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport selects JSON output for CLI checks.
	JSONReport bool

	// MarkdownReport selects Markdown output for CLI checks.
	MarkdownReport bool

	// ReportFile writes CLI output to a file instead of stdout.
	ReportFile string

	// CopyResult copies the result summary to the clipboard after a CLI check.
	CopyResult bool

	// ConfigFilePath is an explicit configuration file path.
	ConfigFilePath string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Model:             DefaultModel,
		Timeout:           DefaultTimeout,
		MaxTextLength:     DefaultMaxTextLength,
		MaxImageSize:      DefaultMaxImageSize,
		FetchPage:         true,
		TorStartupTimeout: DefaultTorStartupTimeout,
		FetchTimeout:      DefaultFetchTimeout,
		UserAgent:         DefaultUserAgent,
		MaxBodySize:       DefaultMaxBodySize,
		ListenAddr:        DefaultListenAddr,
	}
}

// IsConfigured reports whether an API key is present.
func (c *Config) IsConfigured() bool {
	return c.APIKey != ""
}

// XDGConfigDir returns the XDG config directory for scamcheck.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGConfigFile returns the config file path inside XDGConfigDir.
func XDGConfigFile() string {
	return filepath.Join(XDGConfigDir(), "config.yaml")
}

// Validate returns the first problem found in c.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Model == "" {
		return ErrNoModel
	}
	if c.MaxTextLength <= 0 {
		return ErrInvalidMaxTextLength
	}
	if c.MaxImageSize <= 0 {
		return ErrInvalidMaxImageSize
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidBaseURL
		}
	}
	if c.ProxyAddress != "" {
		if _, _, err := net.SplitHostPort(c.ProxyAddress); err != nil {
			return ErrInvalidProxyAddress
		}
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return ErrInvalidListenAddr
	}
	return nil
}
