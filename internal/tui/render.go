package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/itinerary/internal/destination"
)

// Markdown renders an assistant reply for the terminal. theme is "dark",
// "light", "notty" or "auto"; anything else means auto. If rendering fails
// the text comes back unchanged.
func Markdown(text, theme string, width int) string {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch theme {
	case "dark", "light", "notty":
		opts = append(opts, glamour.WithStandardStyle(theme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// Card renders a destination as a labelled box.
func Card(d *destination.Destination) string {
	row := func(label, value string) string {
		return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
	}
	lines := []string{
		TitleStyle.Render(d.City + ", " + d.Country),
		row("Dates", d.StartDate+" to "+d.EndDate),
		LabelStyle.Render("Budget:") + " " + BudgetStyle.Render(destination.FormatMoney(d.Budget)),
		row("Activities", d.ActivityList()),
	}
	return DetailBoxStyle.Render(strings.Join(lines, "\n"))
}
