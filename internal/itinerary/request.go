package itinerary

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/jeanpaul/itinerary/internal/destination"
)

// Request is a raw key/value add request as collected by a front end.
// Budget may be a number or a numeric string; activities may be a list or a
// comma-separated string.
type Request map[string]any

func (r Request) text(key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &CoercionError{Field: key, Value: v, Err: err}
	}
	return strings.TrimSpace(s), nil
}

func (r Request) budget() (float64, error) {
	v, ok := r["budget"]
	if !ok || v == nil {
		return 0, &CoercionError{Field: "budget", Value: v, Err: fmt.Errorf("missing")}
	}
	switch b := v.(type) {
	case bool:
		return 0, &CoercionError{Field: "budget", Value: v, Err: fmt.Errorf("not a number")}
	case string:
		v = strings.TrimSpace(b)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &CoercionError{Field: "budget", Value: v, Err: err}
	}
	return f, nil
}

func (r Request) activities() ([]string, error) {
	v, ok := r["activities"]
	if !ok || v == nil {
		return nil, &CoercionError{Field: "activities", Value: v, Err: fmt.Errorf("missing")}
	}
	if s, ok := v.(string); ok {
		return SplitActivities(s), nil
	}
	list, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, &CoercionError{Field: "activities", Value: v, Err: err}
	}
	return destination.CleanActivities(list), nil
}

// build normalises the request and runs it through the validating factory.
func (r Request) build() (*destination.Destination, error) {
	city, err := r.text("city")
	if err != nil {
		return nil, err
	}
	country, err := r.text("country")
	if err != nil {
		return nil, err
	}
	start, err := r.text("start_date")
	if err != nil {
		return nil, err
	}
	end, err := r.text("end_date")
	if err != nil {
		return nil, err
	}
	budget, err := r.budget()
	if err != nil {
		return nil, err
	}
	activities, err := r.activities()
	if err != nil {
		return nil, err
	}
	return destination.New(city, country, start, end, budget, activities)
}

// SplitActivities turns "Museum, Beach" into ["Museum", "Beach"].
func SplitActivities(s string) []string {
	return destination.CleanActivities(strings.Split(s, ","))
}
