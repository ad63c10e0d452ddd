package destination

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var money = message.NewPrinter(language.English)

// Destination is one stored trip.
type Destination struct {
	City       string
	Country    string
	StartDate  string
	EndDate    string
	Budget     float64
	Activities []string
}

// Patch carries optional new values for Apply. A nil field is left alone.
type Patch struct {
	City       *string
	Country    *string
	StartDate  *string
	EndDate    *string
	Budget     *float64
	Activities []string
}

// Empty reports whether the patch carries no values at all.
func (p Patch) Empty() bool {
	return p.City == nil && p.Country == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Budget == nil && p.Activities == nil
}

// ValidDate reports whether s has the YYYY-MM-DD shape. It does not check
// that the date exists on the calendar.
func ValidDate(s string) bool { return dateRe.MatchString(s) }

// ValidBudget requires a finite amount above zero. NaN fails the comparison.
func ValidBudget(b float64) bool { return b > 0 && !math.IsInf(b, 0) }

func ValidActivities(a []string) bool { return len(a) > 0 }

// New builds a destination and rejects it if any constrained field is invalid.
// Strings and activities are trimmed; blank activities are dropped.
func New(city, country, start, end string, budget float64, activities []string) (*Destination, error) {
	d := &Destination{
		City:       strings.TrimSpace(city),
		Country:    strings.TrimSpace(country),
		StartDate:  strings.TrimSpace(start),
		EndDate:    strings.TrimSpace(end),
		Budget:     budget,
		Activities: CleanActivities(activities),
	}

	verr := &ValidationError{}
	if d.City == "" {
		verr.add("city", city, "must not be empty")
	}
	if d.Country == "" {
		verr.add("country", country, "must not be empty")
	}
	if !ValidDate(d.StartDate) {
		verr.add("start_date", start, "must be YYYY-MM-DD")
	}
	if !ValidDate(d.EndDate) {
		verr.add("end_date", end, "must be YYYY-MM-DD")
	}
	if !ValidBudget(d.Budget) {
		verr.add("budget", budget, "must be a finite amount greater than 0")
	}
	if !ValidActivities(d.Activities) {
		verr.add("activities", activities, "must not be empty")
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return d, nil
}

// Apply writes every valid field of p. Invalid fields keep their old value
// and are reported through the returned *ValidationError; the valid ones are
// still applied.
func (d *Destination) Apply(p Patch) error {
	verr := &ValidationError{}

	if p.City != nil {
		if v := strings.TrimSpace(*p.City); v != "" {
			d.City = v
		} else {
			verr.add("city", *p.City, "must not be empty")
		}
	}
	if p.Country != nil {
		if v := strings.TrimSpace(*p.Country); v != "" {
			d.Country = v
		} else {
			verr.add("country", *p.Country, "must not be empty")
		}
	}
	if p.StartDate != nil {
		if v := strings.TrimSpace(*p.StartDate); ValidDate(v) {
			d.StartDate = v
		} else {
			verr.add("start_date", *p.StartDate, "must be YYYY-MM-DD")
		}
	}
	if p.EndDate != nil {
		if v := strings.TrimSpace(*p.EndDate); ValidDate(v) {
			d.EndDate = v
		} else {
			verr.add("end_date", *p.EndDate, "must be YYYY-MM-DD")
		}
	}
	if p.Budget != nil {
		if ValidBudget(*p.Budget) {
			d.Budget = *p.Budget
		} else {
			verr.add("budget", *p.Budget, "must be a finite amount greater than 0")
		}
	}
	if p.Activities != nil {
		if a := CleanActivities(p.Activities); ValidActivities(a) {
			d.Activities = a
		} else {
			verr.add("activities", p.Activities, "must not be empty")
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Clone returns a deep copy.
func (d *Destination) Clone() *Destination {
	c := *d
	c.Activities = append([]string(nil), d.Activities...)
	return &c
}

// ActivityList joins the activities for display.
func (d *Destination) ActivityList() string {
	return strings.Join(d.Activities, ", ")
}

// String renders the multi-line summary shown after searches and updates.
func (d *Destination) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s, Country: %s\n", d.City, d.Country)
	fmt.Fprintf(&b, "Dates: %s to %s\n", d.StartDate, d.EndDate)
	fmt.Fprintf(&b, "Budget: %s\n", FormatMoney(d.Budget))
	fmt.Fprintf(&b, "Activities: %s\n", d.ActivityList())
	return b.String()
}

// FormatMoney renders an amount as $1,234.50.
func FormatMoney(v float64) string {
	return money.Sprintf("$%.2f", v)
}

// CleanActivities trims every entry and drops the blank ones.
func CleanActivities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
