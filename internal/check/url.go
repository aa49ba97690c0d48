package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/fetch"
	"github.com/nao1215/scamcheck/internal/model"
	"github.com/nao1215/scamcheck/internal/tor"
)

// URLCheck classifies websites and links.
type URLCheck struct {
	*runner
}

// NewURLCheck creates a URLCheck. Page snapshots are taken only when a
// fetcher is supplied with WithFetcher.
func NewURLCheck(c classifier.Classifier, opts ...Option) *URLCheck {
	o := newOptions(opts)
	steps := []Step{
		&normalizeURLStep{},
	}
	if o.fetcher != nil {
		steps = append(steps,
			&snapshotStep{fetcher: o.fetcher, logger: o.logger},
			&indicatorStep{logger: o.logger},
		)
	}
	return &URLCheck{
		runner: newRunner(model.ModalityURL, c, steps, func(in *Input) bool {
			return blank(in.URL)
		}, o),
	}
}

// NormalizeURL prepares a user supplied address for checking.
// A missing scheme becomes https. Only http and https with a host are
// accepted, and onion hosts must carry a valid v3 checksum.
func NormalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyInput
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	u.Host = strings.ToLower(u.Host)

	if tor.IsOnionHost(u.Host) {
		if err := tor.ValidateOnionHost(u.Host); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidOnionAddress, err)
		}
	}
	return u, nil
}

type normalizeURLStep struct{}

func (s *normalizeURLStep) Name() string {
	return "normalize_url"
}

func (s *normalizeURLStep) Do(_ context.Context, job *Job) error {
	u, err := NormalizeURL(job.Input.URL)
	if err != nil {
		return err
	}
	job.Request.Content = u.String()
	return nil
}

// snapshotStep fetches the page and adds what it saw as hints.
// A failed fetch is logged and the URL alone is classified.
type snapshotStep struct {
	fetcher *fetch.Fetcher
	logger  *slog.Logger
}

func (s *snapshotStep) Name() string {
	return "page_snapshot"
}

func (s *snapshotStep) Do(ctx context.Context, job *Job) error {
	target, err := url.Parse(job.Request.Content)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, job.Request.Content)
	}

	snap, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn("page fetch failed, classifying URL only",
			"url", target.String(),
			"error", err,
		)
		job.Request.Hints = append(job.Request.Hints, "page could not be fetched")
		return nil
	}
	job.Request.Hints = append(job.Request.Hints, snap.Hints()...)
	job.Text = snap.Text
	return nil
}
