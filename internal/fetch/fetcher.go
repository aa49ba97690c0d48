package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/scamcheck/internal/log"
	"github.com/nao1215/scamcheck/internal/tor"
)

// Default fetch limits.
const (
	DefaultTimeout     = 15 * time.Second
	DefaultMaxBodySize = 2 * 1024 * 1024
	DefaultUserAgent   = "scamcheck/1.0"
	maxRedirects       = 5
)

var (
	// ErrOnionWithoutTor is returned for .onion URLs when neither a proxy nor
	// an embedded Tor daemon is available.
	ErrOnionWithoutTor = errors.New("onion URLs need a SOCKS5 proxy or --tor")

	// ErrUnsupportedScheme is returned for URLs that are not http or https.
	ErrUnsupportedScheme = errors.New("only http and https URLs can be fetched")
)

// Fetcher retrieves one page and returns its Snapshot.
type Fetcher struct {
	direct      *http.Client
	proxy       *tor.Client
	embedded    *tor.EmbeddedTor
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	textLimit   int
	logger      *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the client used for direct connections.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.direct = c
		}
	}
}

// WithProxy routes every fetch through a SOCKS5 proxy.
func WithProxy(c *tor.Client) Option {
	return func(f *Fetcher) {
		f.proxy = c
	}
}

// WithEmbeddedTor uses an embedded Tor daemon for .onion hosts when no
// proxy is configured. The daemon is started on first use.
func WithEmbeddedTor(e *tor.EmbeddedTor) Option {
	return func(f *Fetcher) {
		f.embedded = e
	}
}

// WithTimeout bounds a single fetch.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize limits how many body bytes are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// WithTextLimit sets how many characters of visible text are kept.
func WithTextLimit(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.textLimit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		textLimit:   DefaultTextLimit,
		logger:      log.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.direct == nil {
		f.direct = &http.Client{
			Timeout: f.timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	return f
}

// Fetch GETs target and returns its snapshot. Non-HTML responses produce a
// snapshot without content fields. Non-2xx statuses are not errors; the
// status is part of the snapshot.
func (f *Fetcher) Fetch(ctx context.Context, target *url.URL) (*Snapshot, error) {
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, ErrUnsupportedScheme
	}

	client, err := f.clientFor(ctx, target)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target.Redacted(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target.Redacted(), err)
	}
	truncated := int64(len(body)) > f.maxBodySize
	if truncated {
		body = body[:f.maxBodySize]
	}

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}

	snap := &Snapshot{}
	if isHTML(resp.Header.Get("Content-Type")) {
		parsed, err := Parse(bytes.NewReader(body), final, f.textLimit)
		if err != nil {
			f.logger.Debug("html parse failed", "url", final.Redacted(), "error", err)
		} else {
			snap = parsed
		}
	}

	snap.URL = target.String()
	snap.FinalURL = final.String()
	snap.StatusCode = resp.StatusCode
	snap.ContentType = resp.Header.Get("Content-Type")
	snap.Truncated = truncated

	f.logger.Debug("page fetched", "url", final.Redacted(), "status", resp.StatusCode, "bytes", len(body))
	return snap, nil
}

// clientFor picks the HTTP client for target's host.
func (f *Fetcher) clientFor(ctx context.Context, target *url.URL) (*http.Client, error) {
	onion := tor.IsOnionHost(target.Host)

	if f.proxy != nil {
		return f.proxy.NewHTTPClient(onion), nil
	}
	if !onion {
		return f.direct, nil
	}
	if f.embedded == nil {
		return nil, ErrOnionWithoutTor
	}

	if !f.embedded.IsRunning() {
		f.logger.Info("starting embedded Tor daemon, this can take a few minutes")
	}
	if err := f.embedded.Start(ctx); err != nil {
		return nil, err
	}
	c, err := f.embedded.NewClient(f.timeout)
	if err != nil {
		return nil, err
	}
	return c.NewHTTPClient(true), nil
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "text/html" || mt == "application/xhtml+xml"
}
