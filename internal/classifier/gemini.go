package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/nao1215/scamcheck/internal/log"
)

// DefaultTimeout bounds one GenerateContent call when no timeout is set.
const DefaultTimeout = 60 * time.Second

// GeminiClassifier classifies inputs with the Gemini API.
// Each Classify call issues exactly one GenerateContent request. There is
// no retry; a failed check is resubmitted by the user.
type GeminiClassifier struct {
	apiKey     string
	baseURL    string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	mu     sync.Mutex
	client *genai.Client
}

// Option configures a GeminiClassifier.
type Option func(*GeminiClassifier)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(g *GeminiClassifier) {
		g.apiKey = key
	}
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(baseURL string) Option {
	return func(g *GeminiClassifier) {
		g.baseURL = baseURL
	}
}

// WithModel sets the model name.
func WithModel(name string) Option {
	return func(g *GeminiClassifier) {
		g.model = name
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(g *GeminiClassifier) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GeminiClassifier) {
		g.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *GeminiClassifier) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGeminiClassifier creates a classifier. The SDK client is created lazily
// on the first request, so construction never touches the network.
func NewGeminiClassifier(opts ...Option) *GeminiClassifier {
	g := &GeminiClassifier{
		model:   "gemini-2.0-flash",
		timeout: DefaultTimeout,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Configured reports whether an API key is set.
func (g *GeminiClassifier) Configured() bool {
	return g.apiKey != ""
}

// Model returns the model name.
func (g *GeminiClassifier) Model() string {
	return g.model
}

// Classify sends req to Gemini and returns the raw JSON reply.
func (g *GeminiClassifier) Classify(ctx context.Context, req *Request) (*Reply, error) {
	if !g.Configured() {
		return nil, ErrNotConfigured
	}
	if req == nil {
		return nil, ErrNilRequest
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := g.sdkClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ResponseSchema(),
		Temperature:       genai.Ptr[float32](0.2),
	}

	start := time.Now()
	g.logger.Debug("classifier request", "model", g.model, "modality", req.Modality.String())

	resp, err := client.Models.GenerateContent(ctx, g.model, BuildContents(req), config)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, fmt.Errorf("%w after %s", ErrTimeout, g.timeout)
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%w: %w", ErrRequestFailed, ctx.Err())
		default:
			return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
		}
	}

	text := resp.Text()
	g.logger.Debug("classifier reply", "model", g.model, "elapsed", time.Since(start), "bytes", len(text))
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &Reply{Text: text, Model: g.model}, nil
}

func (g *GeminiClassifier) sdkClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.httpClient,
	}
	if g.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}
