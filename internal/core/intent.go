package core

// Intent is the routing decision for a single user message.
type Intent int

const (
	// IntentBook asks to create an appointment.
	IntentBook Intent = iota
	// IntentQuery asks about existing bookings / free time.
	IntentQuery
)

func (i Intent) String() string {
	switch i {
	case IntentBook:
		return "book"
	case IntentQuery:
		return "query"
	}
	return "unknown"
}
