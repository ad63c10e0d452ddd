package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/itinerary/internal/assistant"
	"github.com/jeanpaul/itinerary/internal/config"
	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/itinerary"
	"github.com/jeanpaul/itinerary/pkg/logger"
)

type echoAssistant struct{}

func (echoAssistant) GenerateItinerary(_ context.Context, d *destination.Destination) string {
	return "Day 1 in " + d.City
}

func (echoAssistant) GenerateBudgetTips(_ context.Context, d *destination.Destination) string {
	return "Save money in " + d.City
}

func testApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	log := logger.NewNop()
	return &app{
		cfg:      config.DefaultConfig(),
		log:      log,
		store:    itinerary.New(log),
		asst:     echoAssistant{},
		dataPath: filepath.Join(t.TempDir(), "data", "destinations.json"),
		out:      out,
		theme:    "notty",
	}, out
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

var parisLines = []string{"1", "Paris", "France", "2025-06-01", "2025-06-10", "2000", "Museum, Eiffel Tower"}

func TestMenu_AddThenExitSaves(t *testing.T) {
	a, out := testApp(t)
	in := script(append(parisLines, "9")...)

	require.NoError(t, a.runMenu(context.Background(), in))
	assert.Contains(t, out.String(), "Destination 'Paris, France' added successfully.")
	assert.Contains(t, out.String(), "Goodbye!")

	loaded := itinerary.New(nil)
	require.NoError(t, loaded.Load(a.dataPath))
	d, err := loaded.FindByCity("paris")
	require.NoError(t, err)
	assert.Equal(t, []string{"Museum", "Eiffel Tower"}, d.Activities)
}

func TestMenu_ReasksInvalidInput(t *testing.T) {
	a, out := testApp(t)
	in := script(
		"1", "Tokyo", "Japan",
		"01/10/2025", "2025-10-01",
		"2025-10-09",
		"lots", "-4", "Inf", "3500",
		" , ", "Sushi",
		"9",
	)

	require.NoError(t, a.runMenu(context.Background(), in))
	text := out.String()
	assert.Contains(t, text, "Invalid date format. Please use YYYY-MM-DD.")
	assert.Contains(t, text, "Invalid input. Please enter a number.")
	assert.Contains(t, text, "Budget must be a positive number.")
	assert.Contains(t, text, "Activities cannot be empty.")

	d, err := a.store.FindByCity("Tokyo")
	require.NoError(t, err)
	assert.Equal(t, 3500.0, d.Budget)
}

func TestMenu_UpdateShowsDiffAndKeepsInvalidField(t *testing.T) {
	a, out := testApp(t)
	in := script(append(parisLines,
		"3", "paris",
		"", "", "2025-13-9", "", "2500", "",
		"9",
	)...)

	require.NoError(t, a.runMenu(context.Background(), in))
	text := out.String()
	assert.Contains(t, text, "Current details for Paris:")
	assert.Contains(t, text, "-Budget: $2,000.00")
	assert.Contains(t, text, "+Budget: $2,500.00")
	assert.Contains(t, text, "some fields kept their old value")

	d, err := a.store.FindByCity("Paris")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", d.StartDate)
	assert.Equal(t, 2500.0, d.Budget)
}

func TestMenu_UpdateNothing(t *testing.T) {
	a, out := testApp(t)
	in := script(append(parisLines, "3", "Paris", "", "", "", "", "", "", "9")...)

	require.NoError(t, a.runMenu(context.Background(), in))
	assert.Contains(t, out.String(), "No updates provided.")
}

func TestMenu_ViewAllAndSort(t *testing.T) {
	a, out := testApp(t)
	in := script(append(parisLines,
		"1", "Lisbon", "Portugal", "2025-02-01", "2025-02-05", "900", "Tram",
		"4", "y", "budget",
		"9",
	)...)

	require.NoError(t, a.runMenu(context.Background(), in))
	assert.Contains(t, out.String(), "Destinations sorted by budget.")
	assert.Equal(t, "Lisbon", a.store.All()[0].City)
}

func TestMenu_SearchAndAssist(t *testing.T) {
	a, out := testApp(t)
	in := script(append(parisLines,
		"5", "activity", "museum",
		"5", "hotel", "x",
		"6", "Paris", "2",
		"6", "Oslo",
		"9",
	)...)

	require.NoError(t, a.runMenu(context.Background(), in))
	text := out.String()
	assert.Contains(t, text, "City: Paris, Country: France")
	assert.Contains(t, text, "Invalid search type.")
	assert.Contains(t, text, "Save money in Paris")
	assert.Contains(t, text, "Destination 'Oslo' not found.")
}

func TestMenu_AssistPlaceholder(t *testing.T) {
	a, out := testApp(t)
	a.asst = assistant.New(nil)
	in := script(append(parisLines, "6", "Paris", "1", "9")...)

	require.NoError(t, a.runMenu(context.Background(), in))
	assert.Contains(t, out.String(), assistant.Placeholder)
}

func TestMenu_RemoveAndLoad(t *testing.T) {
	a, out := testApp(t)
	in := script(append(parisLines,
		"7",
		"2", "PARIS",
		"2", "Paris",
		"8",
		"9",
	)...)

	require.NoError(t, a.runMenu(context.Background(), in))
	text := out.String()
	assert.Contains(t, text, "Itinerary saved successfully.")
	assert.Contains(t, text, "Destination 'PARIS' removed.")
	assert.Contains(t, text, "Destination 'Paris' not found.")
	assert.Contains(t, text, "Itinerary loaded successfully.")
	assert.Equal(t, 1, a.store.Len())
}

func TestMenu_LoadCorrupt(t *testing.T) {
	a, out := testApp(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(a.dataPath), 0755))
	require.NoError(t, os.WriteFile(a.dataPath, []byte("{oops"), 0644))

	err := a.runMenu(context.Background(), script("8"))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "It might be corrupted.")

	kept, err := os.ReadFile(a.dataPath + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{oops", string(kept))
}

func TestMenu_ReloadAfterRepairOverwritesNormally(t *testing.T) {
	a, _ := testApp(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(a.dataPath), 0755))
	require.NoError(t, os.WriteFile(a.dataPath, []byte("{oops"), 0644))
	a.loadAtStartup()
	require.Error(t, a.unreadable)

	good := `[{"city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":2000,"activities":["Museum"]}]`
	require.NoError(t, os.WriteFile(a.dataPath, []byte(good), 0644))

	require.NoError(t, a.runMenu(context.Background(), script("8", "9")))
	assert.NoError(t, a.unreadable)
	assert.NoFileExists(t, a.dataPath+".corrupt")

	check := itinerary.New(nil)
	require.NoError(t, check.Load(a.dataPath))
	assert.Equal(t, 1, check.Len())
}

func TestMenu_EOFExitsAndSaves(t *testing.T) {
	a, out := testApp(t)
	in := strings.NewReader(strings.Join(parisLines, "\n"))

	require.NoError(t, a.runMenu(context.Background(), in))
	assert.Contains(t, out.String(), "Exiting and saving data...")
	_, err := os.Stat(a.dataPath)
	assert.NoError(t, err)
}

func TestMenu_InvalidChoice(t *testing.T) {
	a, out := testApp(t)
	require.NoError(t, a.runMenu(context.Background(), script("42", "9")))
	assert.Contains(t, out.String(), "Invalid choice. Please enter a number between 1 and 9.")
}

func TestMenu_InfiniteBudgetNeverReachesSave(t *testing.T) {
	a, _ := testApp(t)
	in := script(append(parisLines,
		"1", "Rome", "Italy", "2025-07-01", "2025-07-05", "Inf", "800", "Colosseum",
		"9",
	)...)

	require.NoError(t, a.runMenu(context.Background(), in))

	loaded := itinerary.New(nil)
	require.NoError(t, loaded.Load(a.dataPath))
	rome, err := loaded.FindByCity("Rome")
	require.NoError(t, err)
	assert.Equal(t, 800.0, rome.Budget)
	assert.Equal(t, 2, loaded.Len())
}
