// pkg/model/date.go
package model

// DateStatus classifies the outcome of normalizing a raw date cell
type DateStatus int

const (
	// DateNone indicates a blank or missing cell
	DateNone DateStatus = iota
	// DateParsed indicates a successfully normalized calendar date
	DateParsed
	// DateUnparsed indicates a value that could not be interpreted as a date
	DateUnparsed
)

// String returns a string representation of the date status
func (s DateStatus) String() string {
	switch s {
	case DateNone:
		return "None"
	case DateParsed:
		return "Parsed"
	case DateUnparsed:
		return "Unparsed"
	default:
		return "Unknown"
	}
}

// NormalizedDate is the result of date normalization. Only a Parsed value
// carries a canonical YYYY-MM-DD key; Unparsed values keep the raw text and
// compare equal to nothing, so a degraded parse can never accidentally match
// a filter key.
type NormalizedDate struct {
	Status DateStatus
	Key    string // canonical YYYY-MM-DD, set only when Status == DateParsed
	Raw    string // original cell text, set only when Status == DateUnparsed
}

// ParsedDate builds a normalized date from a canonical YYYY-MM-DD key
func ParsedDate(key string) NormalizedDate {
	return NormalizedDate{Status: DateParsed, Key: key}
}

// UnparsedDate builds a degraded result that preserves the raw text
func UnparsedDate(raw string) NormalizedDate {
	return NormalizedDate{Status: DateUnparsed, Raw: raw}
}

// NoDate represents a blank or missing date cell
func NoDate() NormalizedDate {
	return NormalizedDate{Status: DateNone}
}

// Matches reports whether the date equals a canonical target key.
// Unparsed and missing dates match nothing.
func (d NormalizedDate) Matches(key string) bool {
	return d.Status == DateParsed && key != "" && d.Key == key
}

// String returns the canonical key for parsed dates and the raw text for
// unparsed ones, for display only
func (d NormalizedDate) String() string {
	switch d.Status {
	case DateParsed:
		return d.Key
	case DateUnparsed:
		return d.Raw
	default:
		return ""
	}
}
