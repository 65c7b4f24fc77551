// Package dns provides the registration probe for the domain expiry alert application
package dns

import (
	"context"
	"fmt"
	"net"

	"github.com/miekg/dns"

	"github.com/mallocator/domain-expiry-alert/pkg/config"
	"github.com/mallocator/domain-expiry-alert/pkg/logger"
)

const (
	resolvConf      = "/etc/resolv.conf"
	fallbackAddress = "8.8.8.8:53"
)

// Checker handles DNS operations
type Checker struct {
	cfg    *config.Config
	log    *logger.Logger
	server string
}

// New creates a new DNS checker
func New(cfg *config.Config, log *logger.Logger) *Checker {
	return &Checker{
		cfg: cfg,
		log: log,
	}
}

// WithServer pins the resolver address (host:port) instead of reading resolv.conf
func (c *Checker) WithServer(addr string) *Checker {
	c.server = addr
	return c
}

// IsRegistered does a DNS SOA lookup with the configured timeout.
// An NXDOMAIN answer means the name is not registered.
func (c *Checker) IsRegistered(ctx context.Context, domain string) (bool, error) {
	if c.cfg.DNSTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.DNSTimeout)
		defer cancel()
	}

	client := dns.Client{Timeout: c.cfg.DNSTimeout}
	m := dns.Msg{}
	m.SetQuestion(dns.Fqdn(domain), dns.TypeSOA)

	resp, _, err := client.ExchangeContext(ctx, &m, c.nameserver())
	if err != nil {
		return false, fmt.Errorf("DNS query failed: %w", err)
	}

	switch resp.Rcode {
	case dns.RcodeNameError:
		c.log.Debugf("%s does not exist in DNS", domain)
		return false, nil
	case dns.RcodeSuccess:
		return true, nil
	default:
		return false, fmt.Errorf("DNS query for %s returned %s", domain, dns.RcodeToString[resp.Rcode])
	}
}

// nameserver returns the first resolver from resolv.conf, or a public fallback
func (c *Checker) nameserver() string {
	if c.server != "" {
		return c.server
	}

	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil || len(conf.Servers) == 0 {
		c.log.Debugf("Using fallback resolver %s: %v", fallbackAddress, err)
		return fallbackAddress
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port)
}
