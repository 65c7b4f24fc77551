// Package whois provides registration lookups for the domain expiry alert application
package whois

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/mallocator/domain-expiry-alert/pkg/config"
	"github.com/mallocator/domain-expiry-alert/pkg/logger"
)

var (
	// ErrNoDomainInfo is returned when a WHOIS reply holds no domain section
	ErrNoDomainInfo = errors.New("no domain information in WHOIS reply")

	// ErrNotRegistered marks lookups for names the DNS reports as nonexistent
	ErrNotRegistered = errors.New("domain does not appear to be registered")
)

// Registration is the raw registration data of one domain
type Registration struct {
	CreatedDate    DateField
	ExpirationDate DateField
	UpdatedDate    DateField
	Registrar      string
}

// Fetcher retrieves registration data for a domain
type Fetcher interface {
	Fetch(ctx context.Context, domain string) (*Registration, error)
}

// Prober tells whether a name exists in the DNS
type Prober interface {
	IsRegistered(ctx context.Context, domain string) (bool, error)
}

// Client fetches registration data over WHOIS
type Client struct {
	client *whois.Client
}

// NewClient creates a WHOIS client honoring the configured lookup timeout
func NewClient(cfg *config.Config) *Client {
	c := whois.NewClient()
	if cfg.LookupTimeout > 0 {
		c.SetTimeout(cfg.LookupTimeout)
	}
	return &Client{client: c}
}

// Fetch queries WHOIS for domain and parses the reply
func (c *Client) Fetch(ctx context.Context, domain string) (*Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := c.client.Whois(domain)
	if err != nil {
		return nil, fmt.Errorf("WHOIS query failed: %w", err)
	}

	return ParseRegistration(raw)
}

// ParseRegistration extracts registration data from a raw WHOIS reply
func ParseRegistration(raw string) (*Registration, error) {
	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("WHOIS parse failed: %w", err)
	}
	if parsed.Domain == nil {
		return nil, ErrNoDomainInfo
	}

	reg := &Registration{
		CreatedDate:    dateField(parsed.Domain.CreatedDateInTime, parsed.Domain.CreatedDate),
		ExpirationDate: dateField(parsed.Domain.ExpirationDateInTime, parsed.Domain.ExpirationDate),
		UpdatedDate:    dateField(parsed.Domain.UpdatedDateInTime, parsed.Domain.UpdatedDate),
	}
	if parsed.Registrar != nil {
		reg.Registrar = strings.TrimSpace(parsed.Registrar.Name)
	}
	return reg, nil
}

// Checker turns registration lookups into display records
type Checker struct {
	cfg     *config.Config
	log     *logger.Logger
	fetcher Fetcher
	prober  Prober
	now     func() time.Time
}

// New creates a new WHOIS checker backed by the WHOIS client
func New(cfg *config.Config, log *logger.Logger) *Checker {
	return &Checker{
		cfg:     cfg,
		log:     log,
		fetcher: NewClient(cfg),
		now:     time.Now,
	}
}

// WithFetcher replaces the registration source
func (c *Checker) WithFetcher(f Fetcher) *Checker {
	c.fetcher = f
	return c
}

// WithProber sets the DNS probe consulted when a lookup fails
func (c *Checker) WithProber(p Prober) *Checker {
	c.prober = p
	return c
}

// WithClock replaces the time source used for day counts
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Lookup fetches and normalizes the registration of one domain.
// Failures never escape: they come back as a placeholder record with Err set.
func (c *Checker) Lookup(ctx context.Context, domain string) Result {
	c.log.Debugf("Looking up %s", domain)

	reg, err := c.fetcher.Fetch(ctx, domain)
	if err != nil {
		return c.fail(ctx, domain, err)
	}

	rec := Record{
		Domain:    domain,
		Registrar: NA,
		Days:      UnknownDays(),
	}
	if reg.Registrar != "" {
		rec.Registrar = reg.Registrar
	}

	created, _ := PickFirstDate(reg.CreatedDate)
	updated, _ := PickFirstDate(reg.UpdatedDate)
	expiry, ok := PickFirstDate(reg.ExpirationDate)

	rec.CreationDate = FormatDate(created)
	rec.LastUpdated = FormatDate(updated)
	rec.ExpiryDate = FormatDate(expiry)
	if ok {
		rec.Days = DaysUntil(expiry, c.now())
		c.log.Infof("→ %s expires at %s, days to expiry: %s", domain, expiry.Format(time.RFC3339), rec.Days)
	} else {
		c.log.Warnf("No expiration date for %s", domain)
	}

	return Result{Record: rec}
}

// fail logs err and builds the placeholder result for domain
func (c *Checker) fail(ctx context.Context, domain string, err error) Result {
	if c.prober != nil {
		registered, perr := c.prober.IsRegistered(ctx, domain)
		switch {
		case perr != nil:
			c.log.Debugf("DNS probe for %s failed: %v", domain, perr)
		case !registered:
			err = fmt.Errorf("%w: %w", ErrNotRegistered, err)
		}
	}

	c.log.Errorf("Failed to fetch details for %s: %v", domain, err)
	return Result{Record: Placeholder(domain), Err: err}
}
