// Package ratelimit provides per-client, per-endpoint HTTP rate limiting.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// Limiter keeps one token bucket per client+endpoint+method, where a
// prefix-matched endpoint is keyed by its configured prefix.
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	config      *Config
	idleTTL     time.Duration
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{
			Enabled:         true,
			DefaultLimit:    600,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		}
	}
	if config.Whitelist == nil {
		config.Whitelist = make(map[string]bool)
	}
	if config.Blacklist == nil {
		config.Blacklist = make(map[string]bool)
	}

	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		idleTTL: time.Hour,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}

	return l
}

// Allow checks if a request from the given client is allowed for the specified endpoint.
func (l *Limiter) Allow(clientID string, endpoint string, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{Allowed: false}
	}

	endpointConfig := MatchEndpoint(endpoint, method, l.config.EndpointConfigs)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}

	// Unlimited endpoint (e.g., health check)
	if endpointConfig.Limit <= 0 || endpointConfig.Window <= 0 {
		return true, Info{Allowed: true}
	}

	// Prefix matches share one bucket so /job-descriptions/{id} cannot be
	// used to mint fresh buckets.
	key := endpoint
	if endpointConfig.Path != "" && endpointConfig.Path != endpoint {
		key = endpointConfig.Path
	}

	now := time.Now()
	lim := l.getLimiter(clientID+":"+key+":"+method, endpointConfig, now)

	info := Info{Limit: endpointConfig.Limit}
	info.Allowed = lim.AllowN(now, 1)
	if !info.Allowed {
		r := lim.ReserveN(now, 1)
		info.RetryAfter = r.DelayFrom(now)
		r.CancelAt(now)
	}

	tokens := lim.TokensAt(now)
	if tokens < 0 {
		tokens = 0
	}
	info.Remaining = int(tokens)
	info.ResetTime = now
	if missing := float64(lim.Burst()) - tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	}

	return info.Allowed, info
}

func (l *Limiter) getLimiter(key string, cfg *EndpointConfig, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.Limit
		}
		every := cfg.Window / time.Duration(cfg.Limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), burst)}
		l.buckets[key] = b
	}
	b.lastAccess = now
	return b.limiter
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			l.cleanupBuckets(now)
		case <-l.cleanupStop:
			return
		}
	}
}

// cleanupBuckets drops buckets idle for longer than idleTTL.
func (l *Limiter) cleanupBuckets(now time.Time) {
	cutoff := now.Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

func (l *Limiter) bucketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
