package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/scamcheck/internal/classifier"
	"github.com/nao1215/scamcheck/internal/fetch"
	"github.com/nao1215/scamcheck/internal/log"
	"github.com/nao1215/scamcheck/internal/model"
)

// Input is one submission. Only the field matching the check's modality
// is read.
type Input struct {
	// Text is the pasted message for text checks.
	Text string

	// Image is the raw upload for image checks.
	Image []byte

	// ImageName is the original file name, used only for logging.
	ImageName string

	// URL is the address for URL checks.
	URL string
}

// Callbacks receive the outcome of an accepted Run.
// Nil callbacks are skipped.
type Callbacks struct {
	OnResult func(*model.AnalysisResult)
	OnError  func(error)
}

func (c Callbacks) deliver(r *model.AnalysisResult) {
	if c.OnResult != nil {
		c.OnResult(r)
	}
}

func (c Callbacks) fail(err error) {
	if c.OnError != nil {
		c.OnError(err)
	}
}

// Check is the input capture component for one modality.
type Check interface {
	// Modality reports which input kind the check accepts.
	Modality() model.Modality

	// Validate reports ErrEmptyInput when in has nothing to check.
	Validate(in *Input) error

	// Busy reports whether a request is outstanding.
	Busy() bool

	// Run validates in, builds and sends one classifier request and
	// delivers the outcome through cb. It blocks until the outcome has
	// been delivered. A non-nil return means the submission was rejected
	// (ErrEmptyInput or ErrBusy) and no callback fired.
	Run(ctx context.Context, in *Input, cb Callbacks) error
}

// options holds the settings shared by every check kind.
type options struct {
	logger        *slog.Logger
	maxTextLength int
	maxImageSize  int64
	fetcher       *fetch.Fetcher
	now           func() time.Time
	newID         func() string
}

// Option configures a check.
type Option func(*options)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxTextLength sets the maximum text length in characters.
// Values <= 0 are ignored.
func WithMaxTextLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTextLength = n
		}
	}
}

// WithMaxImageSize sets the maximum image size in bytes.
// Values <= 0 are ignored.
func WithMaxImageSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxImageSize = n
		}
	}
}

// WithFetcher enables page snapshots for URL checks.
func WithFetcher(f *fetch.Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithClock overrides the time source used for AnalyzedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator overrides the CheckID generator.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		maxTextLength: DefaultMaxTextLength,
		maxImageSize:  DefaultMaxImageSize,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = log.Discard()
	}
	return o
}

// runner implements the part of Check that is the same for every modality.
type runner struct {
	modality   model.Modality
	classifier classifier.Classifier
	pipeline   *Pipeline
	isEmpty    func(in *Input) bool
	opts       *options
	busy       atomic.Bool
}

func newRunner(m model.Modality, c classifier.Classifier, steps []Step, isEmpty func(*Input) bool, o *options) *runner {
	return &runner{
		modality:   m,
		classifier: c,
		pipeline:   NewPipeline(steps, WithPipelineLogger(o.logger)),
		isEmpty:    isEmpty,
		opts:       o,
	}
}

func (r *runner) Modality() model.Modality {
	return r.modality
}

func (r *runner) Busy() bool {
	return r.busy.Load()
}

func (r *runner) Validate(in *Input) error {
	if in == nil || r.isEmpty(in) {
		return ErrEmptyInput
	}
	return nil
}

func (r *runner) Run(ctx context.Context, in *Input, cb Callbacks) error {
	if err := r.Validate(in); err != nil {
		return err
	}
	if !r.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}

	result, err := r.analyze(ctx, in)

	// Release before delivering so the receiver can submit again at once.
	r.busy.Store(false)

	if err != nil {
		r.opts.logger.Warn("check failed",
			"modality", r.modality,
			"error", err,
		)
		cb.fail(err)
		return nil
	}
	r.opts.logger.Info("check completed",
		"modality", r.modality,
		"check_id", result.CheckID,
		"risk_level", result.RiskLevel,
		"confidence", result.Confidence,
	)
	cb.deliver(result)
	return nil
}

func (r *runner) analyze(ctx context.Context, in *Input) (*model.AnalysisResult, error) {
	// Preprocessing may fetch pages or start Tor, so it waits for a key.
	if !classifier.Ready(r.classifier) {
		return nil, classifier.ErrNotConfigured
	}

	job := &Job{
		Input:   in,
		Request: &classifier.Request{Modality: r.modality},
	}
	if err := r.pipeline.Execute(ctx, job); err != nil {
		return nil, err
	}

	reply, err := r.classifier.Classify(ctx, job.Request)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, classifier.ErrEmptyResponse
	}

	result, err := classifier.ParseResult(reply.Text)
	if err != nil {
		return nil, err
	}
	result.CheckID = r.opts.newID()
	result.Modality = r.modality
	result.Model = reply.Model
	result.AnalyzedAt = r.opts.now()
	return result, nil
}

// New returns the check for m.
func New(m model.Modality, c classifier.Classifier, opts ...Option) (Check, error) {
	switch m {
	case model.ModalityText:
		return NewTextCheck(c, opts...), nil
	case model.ModalityImage:
		return NewImageCheck(c, opts...), nil
	case model.ModalityURL:
		return NewURLCheck(c, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownModality, m)
	}
}

// NewAll returns one check per modality.
func NewAll(c classifier.Classifier, opts ...Option) map[model.Modality]Check {
	checks := make(map[model.Modality]Check, len(model.Modalities))
	for _, m := range model.Modalities {
		chk, err := New(m, c, opts...)
		if err != nil {
			continue
		}
		checks[m] = chk
	}
	return checks
}

// IsRejection reports whether err means the submission was not accepted.
func IsRejection(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrBusy)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
