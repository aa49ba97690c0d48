package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/nao1215/scamcheck/internal/check"
	"github.com/nao1215/scamcheck/internal/clipboard"
	"github.com/nao1215/scamcheck/internal/log"
	"github.com/nao1215/scamcheck/internal/model"
	"github.com/nao1215/scamcheck/internal/render"
	"github.com/nao1215/scamcheck/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// DefaultMaxUploadSize bounds multipart bodies on /api/check.
	DefaultMaxUploadSize int64 = 10*1024*1024 + 1024*1024

	// maxFormSize bounds urlencoded bodies.
	maxFormSize int64 = 1024 * 1024

	shutdownTimeout = 5 * time.Second
)

// ErrServerClosed is returned by Serve after Shutdown.
var ErrServerClosed = http.ErrServerClosed

// Server is the browser UI over one session.
type Server struct {
	session       *session.Session
	hub           *Hub
	clipboard     clipboard.Clipboard
	templates     *template.Template
	logger        *slog.Logger
	maxUploadSize int64
	maxText       int
	httpServer    *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithClipboard sets the clipboard used by the copy action.
func WithClipboard(cb clipboard.Clipboard) Option {
	return func(s *Server) {
		s.clipboard = cb
	}
}

// WithMaxUploadSize bounds the multipart body of image checks.
func WithMaxUploadSize(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadSize = n
		}
	}
}

// WithMaxTextLength sets the maxlength of the text area.
func WithMaxTextLength(n int) Option {
	return func(s *Server) {
		s.maxText = n
	}
}

// NewServer creates a Server and subscribes it to sess.
func NewServer(sess *session.Session, opts ...Option) (*Server, error) {
	s := &Server{
		session:       sess,
		maxUploadSize: DefaultMaxUploadSize,
		maxText:       check.DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Discard()
	}
	if s.clipboard == nil {
		s.clipboard = clipboard.NewSystem()
	}

	tmpl, err := render.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse result template: %w", err)
	}
	if tmpl, err = tmpl.ParseFS(templateFS, "templates/*.tmpl"); err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	s.templates = tmpl

	s.hub = NewHub(s.logger)
	sess.Subscribe(func(tr session.Transition) {
		s.hub.Broadcast("state", s.payload(tr))
	})
	return s, nil
}

// Handler returns the HTTP handler with every route registered.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded directory is always present
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/modality", s.handleModality)
	mux.HandleFunc("POST /api/check", s.handleCheck)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/copy", s.handleCopy)
	mux.HandleFunc("GET /ws", s.hub.ServeWS(func() (string, any) {
		return "state", s.payload(s.session.Snapshot())
	}))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return securityHeaders(mux)
}

// Serve runs the hub and serves on l until ctx is done, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go s.hub.Run(hubCtx)

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down web server: %w", err)
	}
	s.session.Close()
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	tr := s.session.Snapshot()
	panel, err := s.renderPanel(tr.State)
	if err != nil {
		s.logger.Error("failed to render panel", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Configured: s.session.Configured(),
		Tabs:       newTabs(tr.Modality),
		Active:     tr.Modality,
		Busy:       tr.State.Kind() == session.KindLoading,
		Panel:      panel,
		MaxText:    s.maxText,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "page", data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.payload(s.session.Snapshot()))
}

func (s *Server) handleModality(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	m, err := model.ParseModality(r.FormValue("modality"))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.session.SwitchModality(m); err != nil {
		s.fail(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, r, http.StatusOK)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	in, status, err := s.readInput(w, r)
	if err != nil {
		s.fail(w, r, status, err.Error())
		return
	}

	err = s.session.Submit(r.Context(), in)
	switch {
	case err == nil:
		s.respond(w, r, http.StatusAccepted)
	case errors.Is(err, check.ErrBusy):
		s.fail(w, r, http.StatusConflict, check.Message(err))
	case errors.Is(err, check.ErrEmptyInput):
		s.fail(w, r, http.StatusBadRequest, check.Message(err))
	default:
		s.logger.Error("submit failed", "error", err)
		s.fail(w, r, http.StatusInternalServerError, check.Message(err))
	}
}

// readInput reads the submission for the active modality.
func (s *Server) readInput(w http.ResponseWriter, r *http.Request) (*check.Input, int, error) {
	modality := s.session.Modality()
	if modality != model.ModalityImage {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
		if modality == model.ModalityURL {
			return &check.Input{URL: r.FormValue("url")}, 0, nil
		}
		return &check.Input{Text: r.FormValue("text")}, 0, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, http.StatusRequestEntityTooLarge, check.ErrImageTooLarge
		case errors.Is(err, http.ErrMissingFile):
			return nil, http.StatusBadRequest, check.ErrEmptyInput
		default:
			return nil, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err)
		}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read upload: %w", err)
	}
	return &check.Input{Image: data, ImageName: header.Filename}, 0, nil
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.panel().CheckAnother()
	s.respond(w, r, http.StatusOK)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	p := s.panel()
	if p.View() == nil {
		s.fail(w, r, http.StatusConflict, "no result to copy")
		return
	}
	p.Copy()
	s.respond(w, r, http.StatusOK)
}

// panel wraps the displayed result, if any, with its actions.
func (s *Server) panel() *render.Panel {
	var result *model.AnalysisResult
	if st, ok := s.session.State().(session.Result); ok {
		result = st.Result
	}
	return render.NewPanel(result, s.session.Reset,
		render.WithClipboard(s.clipboard),
		render.WithLogger(s.logger),
	)
}

// respond answers script clients with the state and plain form posts with
// a redirect back to the page.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, status int) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	writeJSON(w, status, s.payload(s.session.Snapshot()))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	if !wantsJSON(r) {
		http.Error(w, message, status)
		return
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data: blob:; style-src 'self'; script-src 'self'; connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}
