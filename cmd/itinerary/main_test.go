package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/itinerary/internal/config"
	"github.com/jeanpaul/itinerary/internal/destination"
)

func TestDefaultModel(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "openai", cfg.DefaultProvider)
	assert.Equal(t, "gpt-3.5-turbo", cfg.DefaultModel)
}

func TestMakeProvider(t *testing.T) {
	cfg := config.DefaultConfig()

	p, err := makeProvider(cfg, "ollama", "llama3.2")
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.Equal(t, "llama3.2", p.ModelName())

	_, err = makeProvider(cfg, "nowhere", "")
	assert.Error(t, err)

	// The default config keeps the key as an unexpanded $VAR.
	_, err = makeProvider(cfg, "anthropic", "")
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")

	google := cfg.Providers["google"]
	google.APIKey = "k"
	google.Model = "gemini-2.0-flash"
	cfg.Providers["google"] = google
	p, err = makeProvider(cfg, "google", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.ModelName())
}

func TestRecordDiff(t *testing.T) {
	before, err := destination.New("Paris", "France", "2025-06-01", "2025-06-10", 2000, []string{"Museum"})
	require.NoError(t, err)
	after := before.Clone()
	assert.Empty(t, recordDiff(before, after))

	after.Activities = []string{"Museum", "Louvre"}
	diff := recordDiff(before, after)
	assert.Contains(t, diff, "--- before")
	assert.Contains(t, diff, "+++ after")
	assert.Contains(t, diff, "-Activities: Museum\n")
	assert.Contains(t, diff, "+Activities: Museum, Louvre\n")
	assert.NotContains(t, diff, "-City")
}
