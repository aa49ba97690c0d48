// Package session orchestrates checks for one user.
//
// A Session holds the active modality and a single UI state. Submit moves
// it to Loading and runs the modality's check in a goroutine; the check's
// callback moves it to Result or Error. SwitchModality and Reset return to
// Idle from any state, cancel the outstanding request and retire its
// generation so a late callback is dropped.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nao1215/scamcheck/internal/check"
	"github.com/nao1215/scamcheck/internal/log"
	"github.com/nao1215/scamcheck/internal/model"
)

// ErrNoCheck is returned when no check is registered for the active modality.
var ErrNoCheck = errors.New("no check registered for modality")

// Session is the state machine behind the UI.
type Session struct {
	mu         sync.Mutex
	state      State
	modality   model.Modality
	generation uint64
	cancel     context.CancelFunc

	// notifyMu serializes listener calls so they observe transitions in order.
	notifyMu  sync.Mutex
	listeners map[int]func(Transition)
	nextID    int

	checks     map[model.Modality]check.Check
	configured bool
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithConfigured records whether the classifier has an API key. It only
// drives the configuration banner.
func WithConfigured(configured bool) Option {
	return func(s *Session) {
		s.configured = configured
	}
}

// WithModality sets the initial modality. The default is text.
func WithModality(m model.Modality) Option {
	return func(s *Session) {
		s.modality = m
	}
}

// New creates an idle Session over one check per modality.
func New(checks map[model.Modality]check.Check, opts ...Option) *Session {
	s := &Session{
		state:     Idle{},
		modality:  model.ModalityText,
		checks:    checks,
		listeners: make(map[int]func(Transition)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Modality returns the active modality.
func (s *Session) Modality() model.Modality {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modality
}

// Snapshot returns the current transition without waiting for a change.
func (s *Session) Snapshot() Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transitionLocked()
}

// Configured reports whether the classifier has an API key.
func (s *Session) Configured() bool {
	return s.configured
}

// Subscribe registers fn for every future transition and returns a
// function that removes it. fn runs synchronously and must not call
// Submit, SwitchModality or Reset.
func (s *Session) Subscribe(fn func(Transition)) (unsubscribe func()) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.notifyMu.Lock()
		defer s.notifyMu.Unlock()
		delete(s.listeners, id)
	}
}

// Submit starts a check of in with the active modality's check.
// It returns check.ErrBusy while a request is outstanding, including an
// abandoned one that has not returned yet, and
// check.ErrEmptyInput for an empty submission; neither changes the state.
// The request outlives ctx's cancellation but keeps its values.
func (s *Session) Submit(ctx context.Context, in *check.Input) error {
	s.mu.Lock()
	if _, loading := s.state.(Loading); loading {
		s.mu.Unlock()
		return check.ErrBusy
	}
	chk, ok := s.checks[s.modality]
	if !ok {
		m := s.modality
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoCheck, m)
	}
	if err := chk.Validate(in); err != nil {
		s.mu.Unlock()
		return err
	}
	// A request abandoned by Reset or SwitchModality may still be running.
	if chk.Busy() {
		s.mu.Unlock()
		return check.ErrBusy
	}

	s.retireLocked()
	reqCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	gen := s.generation
	modality := s.modality
	s.state = Loading{}
	s.logger.Debug("check submitted", "modality", modality, "generation", gen)
	s.wg.Add(1)
	s.publishLocked()

	go func() {
		defer s.wg.Done()
		defer cancel()

		err := chk.Run(reqCtx, in, check.Callbacks{
			OnResult: func(r *model.AnalysisResult) { s.finish(gen, Result{Result: r}) },
			OnError: func(err error) {
				s.finish(gen, Error{Message: check.Message(err), Err: err})
			},
		})
		if err != nil {
			s.finish(gen, Error{Message: check.Message(err), Err: err})
		}
	}()
	return nil
}

// SwitchModality activates m and returns to Idle, cancelling any
// outstanding request.
func (s *Session) SwitchModality(m model.Modality) error {
	if _, err := model.ParseModality(string(m)); err != nil {
		return err
	}
	s.mu.Lock()
	s.modality = m
	s.toIdleLocked()
	s.publishLocked()
	return nil
}

// Reset returns to Idle, cancelling any outstanding request.
func (s *Session) Reset() {
	s.mu.Lock()
	s.toIdleLocked()
	s.publishLocked()
}

// Wait blocks until every request goroutine has returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close returns to Idle, cancels any outstanding request and waits for
// its goroutine to return.
func (s *Session) Close() {
	s.Reset()
	s.wg.Wait()
}

// finish applies a callback outcome if gen is still current.
func (s *Session) finish(gen uint64, next State) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("stale response ignored", "generation", gen, "kind", next.Kind())
		return
	}
	if _, loading := s.state.(Loading); !loading {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.cancel = nil
	s.publishLocked()
}

func (s *Session) toIdleLocked() {
	s.retireLocked()
	s.state = Idle{}
}

// retireLocked cancels the outstanding request, if any, and bumps the
// generation so its callbacks are ignored.
func (s *Session) retireLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
}

func (s *Session) transitionLocked() Transition {
	return Transition{
		State:      s.state,
		Modality:   s.modality,
		Generation: s.generation,
	}
}

// publishLocked notifies listeners of the current state and releases mu.
// notifyMu is taken before mu is released so listeners see transitions in
// the order they happened.
func (s *Session) publishLocked() {
	tr := s.transitionLocked()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range s.listeners {
		fn(tr)
	}
}
