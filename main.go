// Package main provides a domain monitoring tool that checks registration expiry
// dates and sends one summary email when a domain reaches an alert threshold.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mallocator/domain-expiry-alert/pkg/config"
	"github.com/mallocator/domain-expiry-alert/pkg/dns"
	"github.com/mallocator/domain-expiry-alert/pkg/domain"
	"github.com/mallocator/domain-expiry-alert/pkg/domainlist"
	"github.com/mallocator/domain-expiry-alert/pkg/logger"
	"github.com/mallocator/domain-expiry-alert/pkg/notify"
	"github.com/mallocator/domain-expiry-alert/pkg/whois"
)

// options holds the command line flags
type options struct {
	allDomains bool
	domains    string
	file       string
	logFile    string
	envFile    string
	configFile string
	debug      bool
}

// mode turns the flags into a run mode
func (o *options) mode() domain.Mode {
	return domain.Mode{
		AllDomains: o.allDomains,
		Domains:    domainlist.ParseList(o.domains),
	}
}

// newRootCmd builds the root command and returns the options its flags bind to
func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "domain-expiry-alert",
		Short: "Check domain registration expiry and email a summary",
		Long: `Looks up the WHOIS registration of each domain and emails one HTML summary
when a domain is exactly 30, 7, 3 or 1 days from expiry. Domains named with
--domains are always reported.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.allDomains, "all_domains", false, "Check all domains from the file")
	f.StringVar(&opts.domains, "domains", "", "Comma-separated list of domains to check")
	f.StringVar(&opts.file, "file", domainlist.DefaultFile, "Domain list file")
	f.StringVar(&opts.logFile, "log-file", logger.DefaultFile, "Log file, opened in append mode")
	f.StringVar(&opts.envFile, "env-file", ".env", "Optional file of KEY=value settings")
	f.StringVar(&opts.configFile, "config", os.Getenv("CONFIG_FILE"), "Optional JSON or YAML config file")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd, opts
}

// loadConfig layers defaults, env file, config file, environment and flags
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.New(nil)
	if err := cfg.LoadDotEnv(opts.envFile); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromFile(opts.configFile); err != nil {
		return nil, err
	}
	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("file") {
		cfg.DomainsFile = opts.file
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if opts.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Close()
	}()
	log.SetDebug(cfg.Debug)
	cfg.Log = log

	whoisChecker := whois.New(cfg, log)
	if cfg.DNSCheck {
		whoisChecker.WithProber(dns.New(cfg, log))
	}
	processor := domain.New(cfg, log, whoisChecker, notify.New(cfg, log))

	report, err := processor.Run(cmd.Context(), opts.mode())
	if len(report.Results) > 0 {
		log.Infof("Domain check finished: %s", report.Summary())
	}
	if err != nil {
		log.Errorf("Domain check failed: %v", err)
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd, _ := newRootCmd()
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
