package domain

// Time format constants
const (
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	Clock12Format  = "03:04 PM"            // 12-hour wall clock with AM/PM marker
	DateTimeFormat = "2006-01-02 15:04"    // combined, for logs and error text
)

// AnonymousSlot is the label used for the implicit single slot of
// unslotted equipment. Stored as NULL, never shown to callers as a choice.
const AnonymousSlot = ""

// Validation limits
const (
	MaxRequesterNameLength = 120
	MaxLabNameLength       = 120
)
