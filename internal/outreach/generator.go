package outreach

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
)

// Generator produces the email body for one lead.
type Generator interface {
	Generate(ctx context.Context, name, industry string) (string, error)
}

// Completer makes one text-generation call.
type Completer interface {
	// Provider names the backing service in errors and logs.
	Provider() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// LLMGenerator renders the template and asks a Completer for the body.
type LLMGenerator struct {
	completer Completer
	tmpl      Template
	timeout   time.Duration
}

// NewLLMGenerator returns a generator bounded by timeout per call. A zero
// timeout leaves the caller's context untouched.
func NewLLMGenerator(c Completer, tmpl Template, timeout time.Duration) *LLMGenerator {
	return &LLMGenerator{completer: c, tmpl: tmpl, timeout: timeout}
}

// Template returns the template in use.
func (g *LLMGenerator) Template() Template {
	return g.tmpl
}

// Generate makes exactly one completion call. Any failure, including an
// empty completion, is an *apperr.ExternalServiceError.
func (g *LLMGenerator) Generate(ctx context.Context, name, industry string) (string, error) {
	prompt, err := g.tmpl.Render(name, industry)
	if err != nil {
		return "", err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	provider := g.completer.Provider()
	start := time.Now()

	text, err := g.completer.Complete(ctx, g.tmpl.System, prompt)
	if err != nil {
		return "", apperr.NewExternalServiceError(provider, "generate email", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.NewExternalServiceError(provider, "generate email", eris.New("empty completion"))
	}

	zap.L().Debug("outreach: email generated",
		zap.String("component", "outreach"),
		zap.String("provider", provider),
		zap.String("industry", industry),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return text, nil
}
