// Command throttle-loadtest measures limiter throughput and latency against a
// shared store. With no -redis-addr flag and no REDIS_ADDR env it starts an
// embedded miniredis, so the binary is self-contained.
//
// It runs two phases: a hot-key phase where every worker hammers a small set of
// keys (contended counters), and a spread phase where each operation picks from a
// large population of unique keys (the common production shape).
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	throttle "github.com/RelayOne/throttle"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		keys        = flag.Int("keys", 100000, "number of distinct keys for the spread phase")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 200000, "operations per phase")
		max         = flag.Int64("max", 1000000, "per-key ceiling used for every check")
		window      = flag.Duration("window", time.Minute, "fixed window length")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		prefix      = flag.String("prefix", "rl:", "counter key prefix")
	)
	flag.Parse()

	if *keys <= 0 || *concurrency <= 0 || *ops <= 0 || *max <= 0 || *window <= 0 {
		fmt.Fprintln(os.Stderr, "keys, concurrency, ops, max, and window must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	cfg := throttle.DefaultConfig()
	cfg.Shared.KeyPrefix = *prefix
	cfg.Sweeper.Enabled = false

	limiter, err := throttle.New().WithConfig(cfg).WithRedis(client).Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "limiter build failed: %v\n", err)
		os.Exit(1)
	}
	defer limiter.Close()

	fmt.Printf("generating %d keys...\n", *keys)
	population := make([]string, *keys)
	for i := range population {
		population[i] = "ip:" + uuid.NewString()
	}
	hot := population[:min(16, len(population))]

	hotStats := runPhase(ctx, limiter, hot, *ops, *concurrency, *max, *window)
	spreadStats := runPhase(ctx, limiter, population, *ops, *concurrency, *max, *window)

	fmt.Println("---- results ----")
	printStats("hot-key", hotStats)
	printStats("spread", spreadStats)

	snap := limiter.MetricsSnapshot()
	fmt.Printf("allowed=%d denied=%d shared_errors=%d fallbacks=%d\n",
		snap.Counters[throttle.MetricCheckAllowed],
		snap.Counters[throttle.MetricCheckDenied],
		snap.Counters[throttle.MetricSharedStoreError],
		snap.Counters[throttle.MetricLocalFallback])
}

func runPhase(ctx context.Context, limiter *throttle.Limiter, keys []string, ops, concurrency int, max int64, window time.Duration) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		denials   int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				key := keys[r.Intn(len(keys))]

				t0 := time.Now()
				dec := limiter.Check(ctx, key, max, window)
				d := time.Since(t0)
				if !dec.Allowed {
					atomic.AddInt64(&denials, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, denials)
}

type phaseStats struct {
	total   time.Duration
	ops     int
	denials int64
	p50     time.Duration
	p95     time.Duration
	p99     time.Duration
	opsPerS float64
}

func computeStats(total time.Duration, samples []time.Duration, denials int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:   total,
		ops:     len(samples),
		denials: denials,
		p50:     percentile(samples, 50),
		p95:     percentile(samples, 95),
		p99:     percentile(samples, 99),
		opsPerS: float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := len(samples) * p / 100
	if idx >= len(samples) {
		idx = len(samples) - 1
	}
	return samples[idx]
}

func printStats(phase string, s phaseStats) {
	fmt.Printf("%-8s total=%s ops=%d denials=%d p50=%s p95=%s p99=%s ops/s=%.0f\n",
		phase,
		s.total.Round(time.Millisecond),
		s.ops,
		s.denials,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
		s.opsPerS)
}
