package itinerary

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/jeanpaul/itinerary/internal/destination"
	"github.com/jeanpaul/itinerary/internal/schema"
	"github.com/jeanpaul/itinerary/pkg/logger"
)

// DefaultPath is where the itinerary is kept unless configured otherwise.
const DefaultPath = "data/destinations.json"

type SearchMode string

const (
	ByCity     SearchMode = "city"
	ByCountry  SearchMode = "country"
	ByActivity SearchMode = "activity"
)

// ParseSearchMode accepts city, country or activity in any case.
func ParseSearchMode(s string) (SearchMode, error) {
	switch m := SearchMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ByCity, ByCountry, ByActivity:
		return m, nil
	}
	return "", ErrInvalidMode
}

type SortKey string

const (
	SortByStartDate SortKey = "start_date"
	SortByBudget    SortKey = "budget"
)

// Store is the ordered, in-memory list of destinations. Cities are matched
// case-insensitively and need not be unique; lookups take the first match.
type Store struct {
	mu        sync.RWMutex
	items     []*destination.Destination
	log       logger.Logger
	validator *schema.Validator
}

func New(log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{
		log:       log.With("component", "store"),
		validator: schema.NewValidator(),
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// All returns copies of every destination in store order.
func (s *Store) All() []*destination.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.items)
}

// AddFromRequest normalises req, validates it and appends the result.
func (s *Store) AddFromRequest(req Request) (*destination.Destination, error) {
	d, err := req.build()
	if err != nil {
		s.log.Debug("add rejected", "error", err)
		return nil, err
	}
	s.add(d)
	return d.Clone(), nil
}

// Add appends d after checking it against the same rules as
// AddFromRequest. A destination built by hand with an empty city or a
// non-positive budget is rejected with a *destination.ValidationError.
func (s *Store) Add(d *destination.Destination) error {
	v, err := destination.New(d.City, d.Country, d.StartDate, d.EndDate, d.Budget, d.Activities)
	if err != nil {
		s.log.Debug("add rejected", "error", err)
		return err
	}
	s.add(v)
	return nil
}

func (s *Store) add(d *destination.Destination) {
	s.mu.Lock()
	s.items = append(s.items, d.Clone())
	s.mu.Unlock()
	s.log.Info("destination added", "city", d.City, "country", d.Country)
}

// Remove deletes every destination whose city matches and returns how many
// went.
func (s *Store) Remove(city string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(d *destination.Destination) bool {
		return strings.EqualFold(d.City, city)
	})
	removed := before - len(s.items)
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, city)
	}
	s.log.Info("destination removed", "city", city, "count", removed)
	return removed, nil
}

// Update applies p to the first destination matching city. A
// *destination.ValidationError means some fields were rejected and kept their
// old values; the rest were applied and the updated copy is still returned.
func (s *Store) Update(city string, p destination.Patch) (*destination.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(city)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, city)
	}
	d := s.items[i]
	err := d.Apply(p)
	if err != nil {
		s.log.Warn("update partially rejected", "city", city, "error", err)
	} else {
		s.log.Info("destination updated", "city", city)
	}
	return d.Clone(), err
}

// FindByCity returns a copy of the first destination matching city.
func (s *Store) FindByCity(city string) (*destination.Destination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(city); i >= 0 {
		return s.items[i].Clone(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, city)
}

func (s *Store) index(city string) int {
	return slices.IndexFunc(s.items, func(d *destination.Destination) bool {
		return strings.EqualFold(d.City, city)
	})
}

// Search returns matches in store order. City and country must match
// exactly; activity matches any activity containing keyword. All comparisons
// ignore case.
func (s *Store) Search(keyword string, mode SearchMode) ([]*destination.Destination, error) {
	var match func(*destination.Destination) bool
	kw := strings.ToLower(keyword)

	switch mode {
	case ByCity:
		match = func(d *destination.Destination) bool { return strings.EqualFold(d.City, keyword) }
	case ByCountry:
		match = func(d *destination.Destination) bool { return strings.EqualFold(d.Country, keyword) }
	case ByActivity:
		match = func(d *destination.Destination) bool {
			return slices.ContainsFunc(d.Activities, func(a string) bool {
				return strings.Contains(strings.ToLower(a), kw)
			})
		}
	default:
		return nil, ErrInvalidMode
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []*destination.Destination
	for _, d := range s.items {
		if match(d) {
			found = append(found, d.Clone())
		}
	}
	return found, nil
}

// Sort reorders the store in place. The sort is stable. Start dates compare as
// plain strings, which orders correctly for the fixed-width YYYY-MM-DD form.
func (s *Store) Sort(key SortKey) error {
	var cmpFn func(a, b *destination.Destination) int
	switch key {
	case SortByStartDate:
		cmpFn = func(a, b *destination.Destination) int { return strings.Compare(a.StartDate, b.StartDate) }
	case SortByBudget:
		cmpFn = func(a, b *destination.Destination) int { return cmp.Compare(a.Budget, b.Budget) }
	default:
		return ErrInvalidSortKey
	}

	s.mu.Lock()
	slices.SortStableFunc(s.items, cmpFn)
	s.mu.Unlock()
	s.log.Debug("destinations sorted", "key", string(key))
	return nil
}

// ViewAll renders the table listing as a string.
func (s *Store) ViewAll() string {
	var b strings.Builder
	s.Table(&b)
	return b.String()
}

// Table writes the fixed-width listing. Long activity lists are cut for
// display only.
func (s *Store) Table(w io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.items) == 0 {
		fmt.Fprintln(w, "No destinations added yet.")
		return
	}

	fmt.Fprintf(w, "%-15s %-15s %-12s %-12s %-10s %s\n", "City", "Country", "Start Date", "End Date", "Budget", "Activities")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, d := range s.items {
		fmt.Fprintf(w, "%-15s %-15s %-12s %-12s %-10.2f %s\n",
			d.City, d.Country, d.StartDate, d.EndDate, d.Budget, truncate(d.ActivityList(), 30, 27))
	}
}

// truncate shortens s to keep runes plus "..." when it is longer than limit.
func truncate(s string, limit, keep int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:keep]) + "..."
}

func cloneAll(in []*destination.Destination) []*destination.Destination {
	out := make([]*destination.Destination, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
