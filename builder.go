package throttle

import (
	"github.com/RelayOne/throttle/internal/store"
	"github.com/RelayOne/throttle/internal/window"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by throttle APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithDefaultPolicy describes the withdefaultpolicy operation and its observable behavior.
//
// WithDefaultPolicy may return an error when input validation, dependency calls, or security checks fail.
// WithDefaultPolicy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithDefaultPolicy(p Policy) *Builder {
	b.config.DefaultPolicy = p
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Limiter, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	local := store.NewLocalStore()

	var shared store.SharedStore
	if b.redis != nil {
		shared = store.NewRedisStore(b.redis, b.config.Shared.KeyPrefix, b.config.Shared.OpTimeout)
	}

	l := &Limiter{
		config:  b.config,
		metrics: NewMetrics(b.config.Metrics),
		local:   local,
		eval:    window.NewEvaluator(shared, local),
	}

	if b.config.Sweeper.Enabled {
		l.sweeper = store.NewSweeper(local, b.config.Sweeper.Interval, b.config.Sweeper.StaleAfter, func(removed int) {
			l.metrics.Add(MetricSweepEvicted, uint64(removed))
		})
		l.sweeper.Start()
	}

	b.built = true
	return l, nil
}
