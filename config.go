package throttle

import (
	"errors"
	"time"
)

// Config defines a public type used by throttle APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Shared  SharedConfig
	Sweeper SweeperConfig
	Metrics MetricsConfig

	// DefaultPolicy is applied by Check when the caller supplies no explicit
	// limits. Max and Window are mandatory and must be positive.
	DefaultPolicy Policy
}

/*
====================================
SHARED STORE CONFIG
====================================
*/

// SharedConfig defines a public type used by throttle APIs.
//
// SharedConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SharedConfig struct {
	// KeyPrefix namespaces every counter key in the shared store.
	KeyPrefix string

	// OpTimeout bounds each shared-store round trip. A call that does not return
	// within this budget is treated as a failure and served locally.
	OpTimeout time.Duration
}

/*
====================================
SWEEPER CONFIG
====================================
*/

// SweeperConfig defines a public type used by throttle APIs.
//
// SweeperConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SweeperConfig struct {
	Enabled bool

	// Interval between sweeps of the local store.
	Interval time.Duration

	// StaleAfter is the age past which a local window entry is purged, independent
	// of each entry's configured window. Stale entries are still evaluated
	// correctly before they are swept; this only bounds memory.
	StaleAfter time.Duration
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by throttle APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Shared: SharedConfig{
			KeyPrefix: "rl:",
			OpTimeout: 250 * time.Millisecond,
		},
		Sweeper: SweeperConfig{
			Enabled:    true,
			Interval:   5 * time.Minute,
			StaleAfter: time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
		DefaultPolicy: PresetStandard,
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a full copy.
	return cfg
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Default policy
	if c.DefaultPolicy.Max <= 0 {
		return ErrInvalidMax
	}
	if c.DefaultPolicy.Window <= 0 {
		return ErrInvalidWindow
	}

	// Shared store
	if c.Shared.KeyPrefix == "" {
		return errors.New("Shared KeyPrefix must not be empty")
	}
	if c.Shared.OpTimeout <= 0 {
		return errors.New("Shared OpTimeout must be > 0")
	}

	// Sweeper
	if c.Sweeper.Enabled {
		if c.Sweeper.Interval <= 0 {
			return errors.New("Sweeper Interval must be > 0")
		}
		if c.Sweeper.StaleAfter <= 0 {
			return errors.New("Sweeper StaleAfter must be > 0")
		}
		if c.Sweeper.StaleAfter < c.Sweeper.Interval {
			return errors.New("Sweeper StaleAfter must be >= Interval")
		}
	}

	return nil
}
