package models

// EventFields are the attributes an event update overwrites. Any of them missing
// from the update body is cleared.
var EventFields = []string{
	"event_title",
	"description",
	"event_type",
	"thumbnail",
	"location",
	"event_date",
}
