package store

// Record is a single tracked person within a group. A nil Date means the
// person is known but their birthday has not been recorded yet.
type Record struct {
	Name string `json:"name"`
	Date *Date  `json:"date"`
}

// Group is a named display bucket of records, in stored order.
type Group struct {
	Name    string
	Records []Record
}

// Missing identifies a tracked person without a birthdate on record.
type Missing struct {
	Group string
	Name  string
}

// Upcoming is one entry of an upcoming-birthdays listing.
type Upcoming struct {
	Name      string
	Date      Date // the recorded birthdate, including year
	DaysUntil int
	Turning   int // age reached on the upcoming birthday
}

// AddOutcome reports what AddOrUpdate did with a record.
type AddOutcome int

const (
	// AddCreated means a new record was inserted.
	AddCreated AddOutcome = iota
	// AddUpdated means an existing record's date was overwritten.
	AddUpdated
	// AddUnchanged means the record already existed with the same date.
	AddUnchanged
)
