package alert

import (
	"testing"

	"github.com/mallocator/domain-expiry-alert/pkg/whois"
)

func record(domain string, days whois.DaysToExpiry) whois.Record {
	return whois.Record{Domain: domain, Days: days}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		days whois.DaysToExpiry
		want bool
	}{
		{whois.Days(30), true},
		{whois.Days(7), true},
		{whois.Days(3), true},
		{whois.Days(1), true},
		{whois.Days(29), false},
		{whois.Days(6), false},
		{whois.Days(2), false},
		{whois.Days(0), false},
		{whois.Days(31), false},
		{whois.ExpiredDays(), false},
		{whois.UnknownDays(), false},
	}
	for _, tc := range tests {
		if got := Matches(tc.days); got != tc.want {
			t.Errorf("Matches(%s) = %v, want %v", tc.days, got, tc.want)
		}
	}
}

func TestShouldNotify(t *testing.T) {
	tests := []struct {
		name    string
		records []whois.Record
		manual  bool
		want    bool
	}{
		{"threshold hit", []whois.Record{record("a.io", whois.Days(100)), record("b.io", whois.Days(7))}, false, true},
		{"no threshold", []whois.Record{record("a.io", whois.Days(29)), record("b.io", whois.Days(6)), record("c.io", whois.Days(2))}, false, false},
		{"expired and unknown", []whois.Record{record("a.io", whois.ExpiredDays()), whois.Placeholder("b.io")}, false, false},
		{"manual without threshold", []whois.Record{record("a.io", whois.Days(200))}, true, true},
		{"manual with failures", []whois.Record{whois.Placeholder("a.io")}, true, true},
		{"empty", nil, false, false},
	}
	for _, tc := range tests {
		if got := ShouldNotify(tc.records, tc.manual); got != tc.want {
			t.Errorf("%s: ShouldNotify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTriggering(t *testing.T) {
	records := []whois.Record{
		record("a.io", whois.Days(30)),
		record("b.io", whois.Days(31)),
		record("c.io", whois.Days(1)),
	}
	got := Triggering(records)
	if len(got) != 2 || got[0].Domain != "a.io" || got[1].Domain != "c.io" {
		t.Errorf("Triggering = %+v", got)
	}
}
