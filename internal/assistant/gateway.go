package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/provider"
	"github.com/jeanpaul/itinerary/pkg/logger"
)

// Placeholder replaces the reply whenever the service cannot produce one.
const Placeholder = "Could not generate AI response."

// DefaultMaxTokens caps the reply length when nothing else is configured.
const DefaultMaxTokens = 1000

// Gateway turns destinations into prompts and sends them to a provider.
// It never returns an error: failures are logged and become Placeholder.
type Gateway struct {
	prov      provider.Provider
	log       logger.Logger
	maxTokens int
	timeout   time.Duration
}

type Option func(*Gateway)

// WithMaxTokens sets the reply length cap.
func WithMaxTokens(n int) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.maxTokens = n
		}
	}
}

// WithTimeout bounds each call. Zero means no limit beyond the caller's ctx.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

func WithLogger(l logger.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

func New(prov provider.Provider, opts ...Option) *Gateway {
	g := &Gateway{
		prov:      prov,
		log:       logger.NewNop(),
		maxTokens: DefaultMaxTokens,
	}
	for _, o := range opts {
		o(g)
	}
	g.log = g.log.With("component", "assistant")
	return g
}

// GenerateItinerary asks for a day-by-day plan for d.
func (g *Gateway) GenerateItinerary(ctx context.Context, d *destination.Destination) string {
	return g.Generate(ctx, PromptFor(KindItinerary, d))
}

// GenerateBudgetTips asks for money-saving advice for d.
func (g *Gateway) GenerateBudgetTips(ctx context.Context, d *destination.Destination) string {
	return g.Generate(ctx, PromptFor(KindBudgetTips, d))
}

// Generate sends p and returns the reply text, or Placeholder.
func (g *Gateway) Generate(ctx context.Context, p Prompt) string {
	log := g.log.With("request_id", uuid.NewString(), "kind", string(p.Kind), "city", p.City)

	if g.prov == nil {
		log.Error("no provider configured")
		return Placeholder
	}

	text := p.String()
	if text == "" {
		log.Error("unknown prompt kind")
		return Placeholder
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	log.Info("generating", "provider", g.prov.Name(), "model", g.prov.ModelName())
	start := time.Now()
	resp, err := g.prov.Complete(ctx, provider.Request{
		Messages: []provider.Message{
			{Role: provider.RoleSystem, Content: SystemInstruction},
			{Role: provider.RoleUser, Content: text},
		},
		MaxTokens: g.maxTokens,
	})
	if err != nil {
		log.Error("text generation failed", "error", err)
		return Placeholder
	}

	reply := strings.TrimSpace(resp.Text)
	if reply == "" {
		log.Warn("empty reply")
		return Placeholder
	}

	fields := []interface{}{"elapsed", time.Since(start).Round(time.Millisecond)}
	if resp.Usage != nil {
		fields = append(fields, "tokens", resp.Usage.TotalTokens)
	}
	log.Info("generated", fields...)
	return reply
}
