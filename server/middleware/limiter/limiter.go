// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/testpro/testpro/config"
)

const (
	ExpiryDuration  = time.Hour       // How long an idle bucket is kept.
	CleanupInterval = 5 * time.Minute // Interval between cleanup runs.
)

// Options configures a Limiter.
type Options struct {
	RequestsPerMinute int
	Burst             int
	IPv4Prefix        int
	IPv6Prefix        int
	PassIPs           []string
}

// OptionsFromConfig reads the limiter section of cfg.
func OptionsFromConfig(cfg *config.ServerConfig) Options {
	return Options{
		RequestsPerMinute: cfg.Limiter.RequestsPerMinute,
		Burst:             cfg.Limiter.Burst,
		IPv4Prefix:        cfg.Limiter.IPv4Prefix,
		IPv6Prefix:        cfg.Limiter.IPv6Prefix,
		PassIPs:           cfg.Limiter.PassIPs,
	}
}

// Limiter holds one token bucket per client network.
type Limiter struct {
	limit      rate.Limit
	burst      int
	ipv4Prefix int
	ipv6Prefix int
	pass       []netip.Prefix

	buckets sync.Map // netip.Prefix -> *bucket
	now     func() time.Time
}

type bucket struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	lastAccess time.Time
}

// New returns a Limiter. Invalid pass list entries are skipped with a warning;
// config validation rejects them before this point.
func New(opts Options) *Limiter {
	l := &Limiter{
		limit:      rate.Limit(float64(opts.RequestsPerMinute) / 60),
		burst:      opts.Burst,
		ipv4Prefix: opts.IPv4Prefix,
		ipv6Prefix: opts.IPv6Prefix,
		now:        time.Now,
	}

	for _, entry := range opts.PassIPs {
		prefix, err := parsePassEntry(entry)
		if err != nil {
			log.Warn().Err(err).Str("entry", entry).Msg("Skipping invalid limiter pass list entry")

			continue
		}

		l.pass = append(l.pass, prefix)
	}

	return l
}

// Allow reports whether a request from addr may proceed, consuming a token
// from the bucket of its network.
func (l *Limiter) Allow(addr netip.Addr) bool {
	if l.isPassListed(addr) {
		return true
	}

	network := getNetwork(addr, l.ipv4Prefix, l.ipv6Prefix)
	now := l.now()

	b := l.bucketFor(network, now)

	b.mu.Lock()
	b.lastAccess = now
	b.mu.Unlock()

	return b.limiter.AllowN(now, 1)
}

// Len returns the number of tracked networks.
func (l *Limiter) Len() int {
	n := 0

	l.buckets.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

// Run removes idle buckets every CleanupInterval until ctx is done.
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *Limiter) bucketFor(network netip.Prefix, now time.Time) *bucket {
	if v, ok := l.buckets.Load(network); ok {
		return v.(*bucket)
	}

	v, _ := l.buckets.LoadOrStore(network, &bucket{
		limiter:    rate.NewLimiter(l.limit, l.burst),
		lastAccess: now,
	})

	return v.(*bucket)
}

func (l *Limiter) isPassListed(addr netip.Addr) bool {
	for _, p := range l.pass {
		if p.Contains(addr) {
			return true
		}
	}

	return false
}

// cleanup drops buckets not accessed within ExpiryDuration.
func (l *Limiter) cleanup() {
	start := l.now()
	expired := 0

	l.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)

		b.mu.Lock()
		idle := start.Sub(b.lastAccess)
		b.mu.Unlock()

		if idle > ExpiryDuration {
			l.buckets.Delete(key)

			expired++
		}

		return true
	})

	if expired > 0 {
		log.Info().
			Int("count", expired).
			Dur("dur", time.Since(start)).
			Msg("Cleaned up expired limiters")
	}
}
