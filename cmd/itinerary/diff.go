package main

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/tui"
)

// recordDiff returns a unified diff of two renderings of a destination, or
// "" when nothing changed.
func recordDiff(before, after *destination.Destination) string {
	from, to := before.String(), after.String()
	if from == to {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("before"), from, to)
	return fmt.Sprint(gotextdiff.ToUnified("before", "after", from, edits))
}

func colorDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")
	var b strings.Builder
	for _, l := range lines {
		body := strings.TrimSuffix(l, "\n")
		nl := l[len(body):]
		switch {
		case strings.HasPrefix(body, "---"), strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "@@"):
			b.WriteString(tui.DimStyle.Render(body))
		case strings.HasPrefix(body, "+"):
			b.WriteString(tui.SuccessStyle.Render(body))
		case strings.HasPrefix(body, "-"):
			b.WriteString(tui.ErrorStyle.Render(body))
		default:
			b.WriteString(body)
		}
		b.WriteString(nl)
	}
	return b.String()
}
