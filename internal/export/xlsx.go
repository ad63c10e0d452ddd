// Package export writes the itinerary to other formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/itinerary/internal/destination"
)

const Sheet = "Destinations"

var header = []any{"City", "Country", "Start Date", "End Date", "Budget", "Activities"}

// XLSX writes one row per destination, in the order given, under a bold
// header row. Budgets are stored as numbers with a currency format.
func XLSX(path string, dests []*destination.Destination) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	moneyFmt := "$#,##0.00"
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(Sheet, "A1", "F1", bold); err != nil {
		return err
	}

	for i, d := range dests {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{d.City, d.Country, d.StartDate, d.EndDate, d.Budget, strings.Join(d.Activities, ", ")}
		if err := f.SetSheetRow(Sheet, cell, &row); err != nil {
			return err
		}
	}
	if n := len(dests); n > 0 {
		if err := f.SetCellStyle(Sheet, "E2", fmt.Sprintf("E%d", n+1), money); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(Sheet, "A", "B", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(Sheet, "C", "E", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(Sheet, "F", "F", 40); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
