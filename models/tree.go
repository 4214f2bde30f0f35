package models

// AllTypes is the event_type sentinel that disables type filtering.
const AllTypes = "All"

// TreeFilter narrows the upcoming tree listings.
type TreeFilter struct {
	// FromDate is the first event_date included, formatted YYYY-MM-DD.
	FromDate string
	Type     string
	Search   string
}
