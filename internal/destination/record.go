package destination

// Record is the persisted shape of a destination. Field order matches the
// on-disk key order.
type Record struct {
	City       string   `json:"city"`
	Country    string   `json:"country"`
	StartDate  string   `json:"start_date"`
	EndDate    string   `json:"end_date"`
	Budget     float64  `json:"budget"`
	Activities []string `json:"activities"`
}

func (d *Destination) Record() Record {
	return Record{
		City:       d.City,
		Country:    d.Country,
		StartDate:  d.StartDate,
		EndDate:    d.EndDate,
		Budget:     d.Budget,
		Activities: append([]string(nil), d.Activities...),
	}
}

// FromRecord rebuilds a destination from its persisted form. The record is
// trusted as written; callers check the document shape before decoding.
func FromRecord(r Record) *Destination {
	return &Destination{
		City:       r.City,
		Country:    r.Country,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Budget:     r.Budget,
		Activities: append([]string(nil), r.Activities...),
	}
}
