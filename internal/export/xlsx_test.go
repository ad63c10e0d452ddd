package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/itinerary/internal/destination"
)

func TestXLSX(t *testing.T) {
	paris, err := destination.New("Paris", "France", "2025-06-01", "2025-06-10", 2000, []string{"Museum", "Eiffel Tower"})
	require.NoError(t, err)
	tokyo, err := destination.New("Tokyo", "Japan", "2025-10-01", "2025-10-09", 3500.5, []string{"Sushi"})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "trips.xlsx")
	require.NoError(t, XLSX(path, []*destination.Destination{paris, tokyo}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(Sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"City", "Country", "Start Date", "End Date", "Budget", "Activities"}, rows[0])
	assert.Equal(t, "Paris", rows[1][0])
	assert.Equal(t, "Museum, Eiffel Tower", rows[1][5])
	assert.Equal(t, "Tokyo", rows[2][0])

	raw, err := f.GetCellValue(Sheet, "E3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3500.5", raw)
}

func TestXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, XLSX(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(Sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
