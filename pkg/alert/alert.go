// Package alert decides whether a run warrants a notification
package alert

import (
	"slices"

	"github.com/mallocator/domain-expiry-alert/pkg/whois"
)

// Thresholds are the day counts at which an alert fires
var Thresholds = [...]int{30, 7, 3, 1}

// Matches reports whether days is exactly one of the thresholds.
// Expired and unknown values never match.
func Matches(days whois.DaysToExpiry) bool {
	n, ok := days.Int()
	return ok && slices.Contains(Thresholds[:], n)
}

// ShouldNotify is true for manual runs, or when any record sits exactly
// on a threshold. A domain that skips over a threshold between runs does
// not trigger on it.
func ShouldNotify(records []whois.Record, manual bool) bool {
	if manual {
		return true
	}
	return slices.ContainsFunc(records, func(r whois.Record) bool {
		return Matches(r.Days)
	})
}

// Triggering returns the records that sit on a threshold
func Triggering(records []whois.Record) []whois.Record {
	var out []whois.Record
	for _, r := range records {
		if Matches(r.Days) {
			out = append(out, r)
		}
	}
	return out
}
