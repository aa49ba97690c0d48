package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/scamcheck/internal/check"
	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/config"
	"github.com/nao1215/scamcheck/internal/fetch"
	"github.com/nao1215/scamcheck/internal/log"
	"github.com/nao1215/scamcheck/internal/tor"
)

// app is everything a command needs after configuration is resolved.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	classifier *classifier.GeminiClassifier
	fetcher    *fetch.Fetcher
	embedded   *tor.EmbeddedTor
}

// loadConfig resolves the configuration for cmd.
// Precedence: defaults < config file < environment < flags.
func loadConfig(cmd *cobra.Command, getenv env) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath, getenv)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: %s", err, configPath)
		}
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("timeout") {
		cfg.Timeout, _ = flags.GetDuration("timeout")
	}
	if flags.Lookup("json") != nil {
		cfg.JSONReport, _ = flags.GetBool("json")
		cfg.MarkdownReport, _ = flags.GetBool("markdown")
		cfg.ReportFile, _ = flags.GetString("output")
		cfg.CopyResult, _ = flags.GetBool("copy")
	}
	if flags.Changed("no-fetch") {
		noFetch, _ := flags.GetBool("no-fetch")
		cfg.FetchPage = !noFetch
	}
	if flags.Changed("proxy") {
		cfg.ProxyAddress, _ = flags.GetString("proxy")
	}
	if flags.Changed("tor") {
		cfg.UseTor, _ = flags.GetBool("tor")
	}
	if flags.Changed("listen") {
		cfg.ListenAddr, _ = flags.GetString("listen")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// newApp builds the classifier and, when page fetching is enabled, the
// fetcher. An external proxy is verified before use.
func newApp(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*app, error) {
	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	a := &app{
		cfg:    cfg,
		logger: logger,
		classifier: classifier.NewGeminiClassifier(
			classifier.WithAPIKey(cfg.APIKey),
			classifier.WithBaseURL(cfg.BaseURL),
			classifier.WithModel(cfg.Model),
			classifier.WithTimeout(cfg.Timeout),
			classifier.WithLogger(logger),
		),
	}

	if !cfg.FetchPage {
		return a, nil
	}

	fetchOpts := []fetch.Option{
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	}

	switch {
	case cfg.ProxyAddress != "":
		client, err := connectProxy(ctx, cmd.ErrOrStderr(), cfg)
		if err != nil {
			return nil, err
		}
		fetchOpts = append(fetchOpts, fetch.WithProxy(client))
	case cfg.UseTor:
		a.embedded = tor.NewEmbeddedTor(tor.WithStartupTimeout(cfg.TorStartupTimeout))
		fetchOpts = append(fetchOpts, fetch.WithEmbeddedTor(a.embedded))
	}

	a.fetcher = fetch.NewFetcher(fetchOpts...)
	return a, nil
}

// connectProxy creates a SOCKS5 client for the configured proxy and
// verifies that it answers.
func connectProxy(ctx context.Context, out io.Writer, cfg *config.Config) (*tor.Client, error) {
	client, err := tor.NewClient(cfg.ProxyAddress, cfg.FetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy client: %w", err)
	}

	fmt.Fprintf(out, "Checking proxy at %s...\n", cfg.ProxyAddress)
	if status := client.CheckConnection(ctx); status != tor.ProxyStatusOK {
		return nil, fmt.Errorf("proxy not available at %s: %w", cfg.ProxyAddress, status.Err())
	}
	return client, nil
}

// checkOptions returns the options shared by every check built from a.
func (a *app) checkOptions() []check.Option {
	opts := []check.Option{
		check.WithLogger(a.logger),
		check.WithMaxTextLength(a.cfg.MaxTextLength),
		check.WithMaxImageSize(a.cfg.MaxImageSize),
	}
	if a.fetcher != nil {
		opts = append(opts, check.WithFetcher(a.fetcher))
	}
	return opts
}

// close stops the embedded Tor daemon if it was started.
func (a *app) close() {
	if a.embedded == nil || !a.embedded.IsRunning() {
		return
	}
	if err := a.embedded.Stop(); err != nil {
		a.logger.Warn("failed to stop embedded Tor", "error", err)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
