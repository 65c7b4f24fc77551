package whois

import (
	"strings"
	"time"
)

// DateField holds the candidate values a registry returned for one date.
// Most registries return one value, some repeat the field.
type DateField []time.Time

// dateLayouts are tried in order for raw values the WHOIS parser left unresolved
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
	"January 2 2006",
}

// ParseDate parses a single registry date string
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// ParseDateField splits raw on commas and newlines and keeps every
// candidate that parses, in order
func ParseDateField(raw string) DateField {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var field DateField
	for _, p := range parts {
		if t, err := ParseDate(p); err == nil {
			field = append(field, t)
		}
	}
	return field
}

// dateField prefers the date the WHOIS parser already resolved and only
// falls back to parsing the raw value when it could not
func dateField(parsed *time.Time, raw string) DateField {
	if parsed != nil && !parsed.IsZero() {
		return DateField{*parsed}
	}
	return ParseDateField(raw)
}

// PickFirstDate returns the first usable value of an ambiguous date field
func PickFirstDate(field DateField) (time.Time, bool) {
	for _, t := range field {
		if !t.IsZero() {
			return t, true
		}
	}
	return time.Time{}, false
}
