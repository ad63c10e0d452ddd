package assistant

import (
	"strings"
	"text/template"

	"github.com/jeanpaul/itinerary/internal/destination"
)

// SystemInstruction is sent ahead of every prompt.
const SystemInstruction = "You are a helpful travel assistant. Provide clear and concise travel information."

// Kind selects which prompt to build.
type Kind string

const (
	KindItinerary  Kind = "itinerary"
	KindBudgetTips Kind = "budget tips"
)

// Prompt holds the trip details a template is filled from.
type Prompt struct {
	Kind       Kind
	City       string
	Country    string
	StartDate  string
	EndDate    string
	Budget     string
	Activities string
}

var templates = template.Must(template.New(string(KindItinerary)).Parse(
	`Create a detailed, day-by-day travel itinerary for {{.City}}, {{.Country}}
from {{.StartDate}} to {{.EndDate}}.
Budget: {{.Budget}} USD.
Activities of interest: {{.Activities}}.
Please make sure the itinerary is realistic for the given dates and budget.
Include suggestions for morning, afternoon, and evening activities.
`))

func init() {
	template.Must(templates.New(string(KindBudgetTips)).Parse(
		`Provide specific budget-saving tips and travel advice for a trip to {{.City}}, {{.Country}}
with a budget of {{.Budget}} USD.
Consider activities like: {{.Activities}}.
Focus on practical advice for accommodations, food, transportation, and activities.
`))
}

// PromptFor fills a prompt of the given kind from d.
func PromptFor(kind Kind, d *destination.Destination) Prompt {
	return Prompt{
		Kind:       kind,
		City:       d.City,
		Country:    d.Country,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		Budget:     destination.FormatMoney(d.Budget),
		Activities: d.ActivityList(),
	}
}

// String renders the prompt text.
func (p Prompt) String() string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, string(p.Kind), p); err != nil {
		// only reachable with an unknown Kind
		return ""
	}
	return b.String()
}
