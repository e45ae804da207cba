package domain

// Event is a calendar entry, such as a death-anniversary commemoration.
// It carries no privacy tier; when PersonID is set the event inherits that
// person's classification, otherwise it is structural.
type Event struct {
	Record
	Title    string `json:"title"`
	PersonID string `json:"person_id,omitempty"`
	// Date is the observed date for single events, free-form.
	Date string `json:"date,omitempty"`

	// Recurrence. Month/Day are stored in the calendar named by Lunar; the
	// conversion between calendars is done by an external utility at display
	// time and never inspected here.
	Recurring bool `json:"recurring"`
	Lunar     bool `json:"lunar,omitempty"`
	Month     int  `json:"month,omitempty"`
	Day       int  `json:"day,omitempty"`
}

// MediaAsset is a stored file reference, optionally attached to a person.
// Attached assets inherit the person's classification; detached assets are
// structural.
type MediaAsset struct {
	Record
	PersonID    string `json:"person_id,omitempty"`
	Path        string `json:"path"`
	ContentType string `json:"content_type,omitempty"`
	Caption     string `json:"caption,omitempty"`
}
