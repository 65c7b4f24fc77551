package whois

import (
	"math"
	"strconv"
	"time"
)

// NA is shown for any value the lookup could not provide
const NA = "N/A"

// Expired is shown instead of a negative day count
const Expired = "Expired"

// DisplayLayout renders dates as e.g. "Monday, 02 January 2006"
const DisplayLayout = "Monday, 02 January 2006"

type daysKind int

const (
	daysUnknown daysKind = iota
	daysRemaining
	daysExpired
)

// DaysToExpiry is a whole number of days, Expired, or unknown
type DaysToExpiry struct {
	kind daysKind
	n    int
}

// Days returns a known, non-negative day count
func Days(n int) DaysToExpiry {
	if n < 0 {
		return DaysToExpiry{kind: daysExpired}
	}
	return DaysToExpiry{kind: daysRemaining, n: n}
}

// ExpiredDays marks a registration whose expiry is in the past
func ExpiredDays() DaysToExpiry { return DaysToExpiry{kind: daysExpired} }

// UnknownDays marks a registration with no usable expiry date
func UnknownDays() DaysToExpiry { return DaysToExpiry{} }

// Int returns the day count and whether one is known
func (d DaysToExpiry) Int() (int, bool) {
	return d.n, d.kind == daysRemaining
}

// IsExpired reports whether the expiry date has passed
func (d DaysToExpiry) IsExpired() bool { return d.kind == daysExpired }

// String returns the table form: the number, "Expired" or "N/A"
func (d DaysToExpiry) String() string {
	switch d.kind {
	case daysRemaining:
		return strconv.Itoa(d.n)
	case daysExpired:
		return Expired
	default:
		return NA
	}
}

// DaysUntil returns the floored number of days from now until expiry
func DaysUntil(expiry, now time.Time) DaysToExpiry {
	days := math.Floor(expiry.Sub(now).Hours() / 24)
	return Days(int(days))
}

// FormatDate renders t for display, or NA for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NA
	}
	return t.Format(DisplayLayout)
}

// Record is the normalized registration summary of one domain
type Record struct {
	Domain       string
	CreationDate string
	ExpiryDate   string
	LastUpdated  string
	Registrar    string
	Days         DaysToExpiry
}

// Placeholder returns the record reported when a lookup fails
func Placeholder(domain string) Record {
	return Record{
		Domain:       domain,
		CreationDate: NA,
		ExpiryDate:   NA,
		LastUpdated:  NA,
		Registrar:    NA,
		Days:         UnknownDays(),
	}
}

// Result is the outcome of a single lookup. Record is always usable;
// Err holds the failure reason when the lookup did not succeed.
type Result struct {
	Record Record
	Err    error
}

// OK reports whether the lookup succeeded
func (r Result) OK() bool { return r.Err == nil }

// Records extracts the records of a batch of results
func Records(results []Result) []Record {
	out := make([]Record, 0, len(results))
	for _, r := range results {
		out = append(out, r.Record)
	}
	return out
}
