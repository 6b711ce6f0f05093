package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/robfig/cron/v3"
)

// DashboardConfig holds the reporting roster and the thresholds used by the
// stats computations. Every field is optional; ApplyDefaults fills the gaps.
type DashboardConfig struct {
	// CSMNames is the ordered list of customer success managers shown in the
	// CSM stats tables.
	CSMNames []string `koanf:"csm_names"`

	// Setters and Closers restrict the sales tables to these people.
	// An empty list means "everyone found in the appointments table".
	Setters []string `koanf:"setters"`
	Closers []string `koanf:"closers"`

	// ExcludedShowClosers are closers whose appointments never count as a
	// setter's "showed" appointment.
	ExcludedShowClosers []string `koanf:"excluded_show_closers"`

	// ExcludedVAs are delivery people hidden from the VA stats table.
	ExcludedVAs []string `koanf:"excluded_vas"`

	// ActivationThresholdDays is the "activated under N days" cutoff.
	ActivationThresholdDays int `koanf:"activation_threshold_days"`

	// InactivityWindowDays is how long a client can go without meaningful
	// activity before it counts as inactive.
	InactivityWindowDays int `koanf:"inactivity_window_days"`

	// PageSize is the number of rows fetched per round trip by paginated
	// repository reads.
	PageSize int `koanf:"page_size"`
}

// DefaultDashboardConfig returns the roster the dashboard shipped with.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		CSMNames: []string{
			"Ben Zazueta",
			"Ryan Grant",
			"Fabio Maldonado",
			"Nicolas Vasquez",
		},
		Setters: []string{
			"Javier Ulloa",
			"Juan Parada",
			"Agustin Nufio",
		},
		Closers: []string{
			"Jonathan Buitron",
			"Dale Kelley",
			"Daniel Infante",
			"Jay Rojas",
		},
		ExcludedShowClosers:     []string{"Melo Moore"},
		ExcludedVAs:             []string{"Yennifer", "No match"},
		ActivationThresholdDays: 30,
		InactivityWindowDays:    30,
		PageSize:                1000,
	}
}

// ApplyDefaults fills zero-valued fields from DefaultDashboardConfig.
// Setters and Closers are left untouched when explicitly configured.
func (d *DashboardConfig) ApplyDefaults() {
	defaults := DefaultDashboardConfig()

	if len(d.CSMNames) == 0 {
		d.CSMNames = defaults.CSMNames
	}
	if d.Setters == nil {
		d.Setters = defaults.Setters
	}
	if d.Closers == nil {
		d.Closers = defaults.Closers
	}
	if d.ExcludedShowClosers == nil {
		d.ExcludedShowClosers = defaults.ExcludedShowClosers
	}
	if d.ExcludedVAs == nil {
		d.ExcludedVAs = defaults.ExcludedVAs
	}
	if d.ActivationThresholdDays == 0 {
		d.ActivationThresholdDays = defaults.ActivationThresholdDays
	}
	if d.InactivityWindowDays == 0 {
		d.InactivityWindowDays = defaults.InactivityWindowDays
	}
	if d.PageSize == 0 {
		d.PageSize = defaults.PageSize
	}
}

// Validate rejects negative thresholds and page sizes.
func (d *DashboardConfig) Validate() error {
	if d.ActivationThresholdDays < 0 {
		return fmt.Errorf("activation_threshold_days must be non-negative")
	}
	if d.InactivityWindowDays < 0 {
		return fmt.Errorf("inactivity_window_days must be non-negative")
	}
	if d.PageSize < 0 {
		return fmt.Errorf("page_size must be non-negative")
	}
	return nil
}

// DigestConfig controls the periodic stats digest email.
type DigestConfig struct {
	Enabled    bool     `koanf:"enabled"`
	Cron       string   `koanf:"cron"`
	Recipients []string `koanf:"recipients"`
	// LookbackDays is the width of the date range each digest covers.
	LookbackDays int `koanf:"lookback_days"`
}

// DefaultDigestConfig keeps the digest off but ready for Monday mornings.
func DefaultDigestConfig() *DigestConfig {
	return &DigestConfig{
		Enabled:      false,
		Cron:         "0 8 * * 1",
		LookbackDays: 7,
	}
}

// Validate checks the cron spec with the standard five-field parser and makes
// sure an enabled digest has somewhere to go.
func (d *DigestConfig) Validate() error {
	if d == nil {
		return nil
	}
	if d.LookbackDays <= 0 {
		return fmt.Errorf("digest lookback_days must be positive")
	}
	if _, err := cron.ParseStandard(d.Cron); err != nil {
		return fmt.Errorf("invalid digest cron %q: %w", d.Cron, err)
	}
	if d.Enabled && len(d.Recipients) == 0 {
		return fmt.Errorf("digest is enabled but has no recipients")
	}
	return nil
}

func buildDSN(c DatabaseConfig) string {
	hostPort := net.JoinHostPort(c.Host, strconv.Itoa(c.Port))

	// Escape the password so characters like ':' or '@' keep the URL valid.
	encodedPassword := url.QueryEscape(c.Password)

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User,
		encodedPassword,
		hostPort,
		c.Name,
		c.SSLMode,
	)
}
