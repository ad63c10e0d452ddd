package health

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jeanpaul/itinerary/internal/provider"
)

type Status struct {
	Provider       string
	Model          string
	Reachable      bool
	ModelAvailable bool
	Models         []string
	Error          string
	Latency        time.Duration
}

// Check verifies that a provider endpoint is reachable by listing its
// models, and whether the configured model is among them.
func Check(ctx context.Context, p provider.Provider) Status {
	s := Status{Provider: p.Name(), Model: p.ModelName()}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	models, err := p.Models(ctx)
	s.Latency = time.Since(start)
	if err != nil {
		s.Error = err.Error()
		return s
	}

	s.Reachable = true
	s.Models = models
	// some endpoints don't list models; assume the configured one exists
	s.ModelAvailable = len(models) == 0 || slices.Contains(models, s.Model)
	return s
}

// ModelError describes a missing model, or returns nil.
func (s Status) ModelError() error {
	if !s.Reachable || s.ModelAvailable {
		return nil
	}
	shown := s.Models
	if len(shown) > 5 {
		shown = shown[:5]
	}
	return fmt.Errorf("model %q not found, available: %s", s.Model, strings.Join(shown, ", "))
}
