// Package config provides configuration handling for the domain expiry alert application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mallocator/domain-expiry-alert/pkg/logger"
)

// ErrMissingSMTP is returned by Validate when mail delivery is not configured
var ErrMissingSMTP = errors.New("smtp not configured")

// Config holds application settings. It is built once at start and passed
// to every component; nothing reads the environment after LoadFromEnv.
type Config struct {
	// File holding the domain list
	DomainsFile string `mapstructure:"domains_file"`

	// Append-mode log file
	LogFile string `mapstructure:"log_file"`

	// SMTP configuration for the summary email
	SMTPServer      string `mapstructure:"smtp_server"`
	SMTPPort        int    `mapstructure:"smtp_port"`
	EmailSender     string `mapstructure:"email_sender"`
	EmailPassword   string `mapstructure:"email_password"`
	RecipientEmails string `mapstructure:"recipient_emails"` // comma separated

	// Lookup settings
	LookupTimeout  time.Duration `mapstructure:"lookup_timeout"`  // zero keeps the whois client default
	LookupInterval time.Duration `mapstructure:"lookup_interval"` // minimum gap between lookups

	// Registration probe used to explain failed lookups
	DNSCheck   bool          `mapstructure:"dns_check"`
	DNSTimeout time.Duration `mapstructure:"dns_timeout"`

	Debug bool `mapstructure:"debug"`

	// Logger instance
	Log *logger.Logger `mapstructure:"-"`

	v *viper.Viper
}

// New creates a new configuration with default values
func New(log *logger.Logger) *Config {
	return &Config{
		DomainsFile: "domains.json",
		LogFile:     logger.DefaultFile,
		SMTPPort:    587,
		DNSCheck:    true,
		DNSTimeout:  5 * time.Second,
		Log:         log,
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set are left alone and a missing file is not an error.
func (c *Config) LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// envKeys are the environment variables read by LoadFromEnv. Each binds
// to the viper key of the same name in lower case.
var envKeys = []string{
	"DOMAINS_FILE",
	"LOG_FILE",
	"SMTP_SERVER",
	"SMTP_PORT",
	"EMAIL_SENDER",
	"EMAIL_PASSWORD",
	"RECIPIENT_EMAILS",
	"LOOKUP_TIMEOUT",
	"LOOKUP_INTERVAL",
	"DNS_CHECK",
	"DNS_TIMEOUT",
	"DEBUG",
}

// LoadFromFile loads configuration from a JSON or YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}

	v := c.viper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := c.unmarshal(); err != nil {
		return fmt.Errorf("invalid config in %s: %w", path, err)
	}

	return nil
}

// LoadFromEnv overrides configuration with environment variables.
// Values loaded from a config file stay in place unless the environment
// sets the same key.
func (c *Config) LoadFromEnv() error {
	v := c.viper()
	for _, env := range envKeys {
		if err := v.BindEnv(strings.ToLower(env), env); err != nil {
			return err
		}
	}
	if err := c.unmarshal(); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

// viper returns the instance shared by the file and env layers
func (c *Config) viper() *viper.Viper {
	if c.v == nil {
		c.v = viper.New()
	}
	return c.v
}

// unmarshal decodes the viper layers into c. The current field values act
// as defaults, so anything set before loading survives unless overridden.
func (c *Config) unmarshal() error {
	v := c.viper()
	for key, value := range c.settings() {
		v.SetDefault(key, value)
	}
	return v.Unmarshal(c)
}

// settings returns the current values keyed like the mapstructure tags
func (c *Config) settings() map[string]interface{} {
	return map[string]interface{}{
		"domains_file":     c.DomainsFile,
		"log_file":         c.LogFile,
		"smtp_server":      c.SMTPServer,
		"smtp_port":        c.SMTPPort,
		"email_sender":     c.EmailSender,
		"email_password":   c.EmailPassword,
		"recipient_emails": c.RecipientEmails,
		"lookup_timeout":   c.LookupTimeout,
		"lookup_interval":  c.LookupInterval,
		"dns_check":        c.DNSCheck,
		"dns_timeout":      c.DNSTimeout,
		"debug":            c.Debug,
	}
}

// Recipients returns the configured recipient addresses
func (c *Config) Recipients() []string {
	var out []string
	for _, r := range strings.Split(c.RecipientEmails, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Addr returns the host:port of the mail relay
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.SMTPServer, c.SMTPPort)
}

// Validate checks that everything needed to send mail is present
func (c *Config) Validate() error {
	var missing []string
	if c.SMTPServer == "" {
		missing = append(missing, "SMTP_SERVER")
	}
	if c.SMTPPort <= 0 {
		missing = append(missing, "SMTP_PORT")
	}
	if c.EmailSender == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if len(c.Recipients()) == 0 {
		missing = append(missing, "RECIPIENT_EMAILS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingSMTP, strings.Join(missing, ", "))
	}
	return nil
}
