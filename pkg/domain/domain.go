// Package domain runs the expiry check pipeline for the domain expiry alert application
package domain

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/mallocator/domain-expiry-alert/pkg/alert"
	"github.com/mallocator/domain-expiry-alert/pkg/config"
	"github.com/mallocator/domain-expiry-alert/pkg/domainlist"
	"github.com/mallocator/domain-expiry-alert/pkg/logger"
	"github.com/mallocator/domain-expiry-alert/pkg/notify"
	"github.com/mallocator/domain-expiry-alert/pkg/whois"
)

// Mode selects which domains a run checks
type Mode struct {
	// Check every domain from the list file
	AllDomains bool

	// Domains named explicitly by the caller
	Domains []string
}

// Manual reports whether the caller named domains explicitly.
// Manual runs always send the summary.
func (m Mode) Manual() bool {
	return len(m.Domains) > 0
}

// Report describes the outcome of a run
type Report struct {
	Results  []whois.Result
	Manual   bool
	Notified bool
}

// Failed counts the lookups that did not succeed
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Summary is a one-line account of the run for the log
func (r *Report) Summary() string {
	return fmt.Sprintf("%d checked, %d failed, summary sent: %t", len(r.Results), r.Failed(), r.Notified)
}

// Processor handles domain processing operations
type Processor struct {
	cfg      *config.Config
	log      *logger.Logger
	whois    *whois.Checker
	notifier *notify.Notifier
	limiter  *rate.Limiter
}

// New creates a new domain processor
func New(cfg *config.Config, log *logger.Logger, whoisChecker *whois.Checker, notifier *notify.Notifier) *Processor {
	limit := rate.Inf
	if cfg.LookupInterval > 0 {
		limit = rate.Every(cfg.LookupInterval)
	}

	return &Processor{
		cfg:      cfg,
		log:      log,
		whois:    whoisChecker,
		notifier: notifier,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Resolve returns the domains a run covers
func (p *Processor) Resolve(mode Mode) []string {
	if !mode.AllDomains {
		return mode.Domains
	}

	domains, err := domainlist.Load(p.cfg.DomainsFile)
	if err != nil {
		p.log.Errorf("Failed to load domain list: %v", err)
		return nil
	}
	p.log.Infof("Loaded %d domains from %s", len(domains), domainlist.Resolve(p.cfg.DomainsFile))
	return domains
}

// Run checks the domains selected by mode and sends the summary when a
// domain sits on an alert threshold or the run is manual. Only mail
// delivery and cancellation errors are returned.
func (p *Processor) Run(ctx context.Context, mode Mode) (*Report, error) {
	report := &Report{Manual: mode.Manual()}

	domains := p.Resolve(mode)
	if len(domains) == 0 {
		p.log.Warnf("No domains to process.")
		return report, nil
	}

	p.log.Infof("Starting domain check with %d domains", len(domains))
	results, err := p.CheckAll(ctx, domains)
	report.Results = results
	if err != nil {
		return report, err
	}

	records := whois.Records(results)
	if !alert.ShouldNotify(records, report.Manual) {
		p.log.Infof("No domain reached an alert threshold, %d checked", len(records))
		return report, nil
	}

	if report.Manual {
		p.log.Infof("Manual check, sending summary")
	}
	for _, r := range alert.Triggering(records) {
		p.log.Infof("→ %s is %s days from expiry", r.Domain, r.Days)
	}

	if err := p.notifier.Send(ctx, records); err != nil {
		return report, err
	}
	report.Notified = true
	return report, nil
}

// CheckAll looks up each domain in turn, exactly as given. A failed
// lookup yields a placeholder result; only cancellation stops the batch.
func (p *Processor) CheckAll(ctx context.Context, domains []string) ([]whois.Result, error) {
	results := make([]whois.Result, 0, len(domains))

	for _, domain := range domains {
		if err := p.limiter.Wait(ctx); err != nil {
			return results, err
		}

		p.log.Infof("Checking %s", domain)
		results = append(results, p.whois.Lookup(ctx, domain))
	}

	return results, nil
}
