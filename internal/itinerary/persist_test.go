package itinerary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := dataPath(t)
	s := seeded(t)
	require.NoError(t, s.Sort(SortByBudget))
	require.NoError(t, s.Save(path))

	loaded := New(nil)
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, s.All(), loaded.All())
}

func TestSave_FileFormat(t *testing.T) {
	path := dataPath(t)
	s := New(nil)
	_, err := s.AddFromRequest(parisRequest())
	require.NoError(t, err)
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `[
    {
        "city": "Paris",
        "country": "France",
        "start_date": "2025-06-01",
        "end_date": "2025-06-10",
        "budget": 2000,
        "activities": [
            "Museum",
            "Eiffel Tower"
        ]
    }
]`
	assert.Equal(t, want, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestSave_EmptyStoreWritesEmptyList(t *testing.T) {
	path := dataPath(t)
	require.NoError(t, New(nil).Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestSave_Overwrites(t *testing.T) {
	path := dataPath(t)
	s := seeded(t)
	require.NoError(t, s.Save(path))

	_, err := s.Remove("Tokyo")
	require.NoError(t, err)
	require.NoError(t, s.Save(path))

	loaded := New(nil)
	require.NoError(t, loaded.Load(path))
	assert.Equal(t, []string{"Paris", "Lisbon"}, cities(loaded.All()))
}

func TestSave_ReportsIOFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := seeded(t).Save(filepath.Join(blocker, "destinations.json"))
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)
}

func TestLoad_MissingFile(t *testing.T) {
	s := seeded(t)
	err := s.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 3, s.Len())
}

func TestLoad_CorruptLeavesStoreUntouched(t *testing.T) {
	cases := map[string]string{
		"invalid json": `[{"city": "Paris",`,
		"wrong shape":  `{"destinations": []}`,
		"wrong types":  `[{"city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":"lots","activities":["Museum"]}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "destinations.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			s := seeded(t)
			before := s.All()

			err := s.Load(path)
			assert.ErrorIs(t, err, ErrCorrupt)
			var perr *PersistenceError
			assert.ErrorAs(t, err, &perr)
			assert.Equal(t, before, s.All())
		})
	}
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "destinations.json")

	got, err := Backup(path)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, os.WriteFile(path, []byte("{first"), 0644))
	got, err = Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".corrupt", got)
	assert.NoFileExists(t, path)

	require.NoError(t, os.WriteFile(path, []byte("{second"), 0644))
	got, err = Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".corrupt.1", got)

	first, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{first", string(first))
	second, err := os.ReadFile(path + ".corrupt.1")
	require.NoError(t, err)
	assert.Equal(t, "{second", string(second))
}

func TestLoad_ToleratesUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destinations.json")
	doc := `[{"city":"Paris","country":"France","start_date":"2025-06-01","end_date":"2025-06-10","budget":2000,"activities":["Museum"],"notes":"window seat"}]`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	s := New(nil)
	require.NoError(t, s.Load(path))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "Paris", s.All()[0].City)
}

func TestLoad_ReplacesCollection(t *testing.T) {
	path := dataPath(t)
	other := New(nil)
	_, err := other.AddFromRequest(parisRequest())
	require.NoError(t, err)
	require.NoError(t, other.Save(path))

	s := seeded(t)
	require.NoError(t, s.Load(path))
	assert.Equal(t, []string{"Paris"}, cities(s.All()))
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	a := New(nil)
	_, err := a.AddFromRequest(parisRequest())
	require.NoError(t, err)
	require.NoError(t, a.Save(filepath.Join(dir, "2024", "a.json")))
	require.NoError(t, seeded(t).Save(filepath.Join(dir, "2025", "q1", "b.json")))

	s := New(nil)
	n, err := s.Import(filepath.Join(dir, "**", "*.json"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, s.Len())
}

func TestImport_CorruptFileAddsNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, seeded(t).Save(filepath.Join(dir, "good.json")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("not json"), 0644))

	s := New(nil)
	_, err := s.Import(filepath.Join(dir, "*.json"))
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Equal(t, 0, s.Len())
}

func TestImport_NoMatches(t *testing.T) {
	_, err := New(nil).Import(filepath.Join(t.TempDir(), "*.json"))
	assert.ErrorIs(t, err, ErrNoData)
}
