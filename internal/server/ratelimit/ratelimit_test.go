package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-ranker/internal/config"
)

func TestLimiter_Allow(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/candidates/rank"
	method := "GET"

	// Should allow requests up to limit
	for i := 0; i < 10; i++ {
		allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", rateInfo.Limit)
		}
		if rateInfo.Remaining != 9-i {
			t.Errorf("Expected remaining %d, got %d", 9-i, rateInfo.Remaining)
		}
	}

	// 11th request should be denied
	allowed, rateInfo := limiter.Allow(clientID, endpoint, method)
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if rateInfo.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", rateInfo.Remaining)
	}
	if rateInfo.RetryAfter <= 0 {
		t.Error("Expected retry after to be positive")
	}
	if !rateInfo.ResetTime.After(time.Now()) {
		t.Error("Reset time should be in the future")
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Whitelisted IP should always be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/analytics", "GET")
		if !allowed {
			t.Errorf("Expected whitelisted request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 for whitelisted, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Blacklisted IP should always be denied
	allowed, _ := limiter.Allow("192.168.1.1", "/analytics", "GET")
	if allowed {
		t.Error("Expected blacklisted request to be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	config := &Config{
		Enabled: false,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// When disabled, all requests should be allowed
	for i := 0; i < 100; i++ {
		allowed, rateInfo := limiter.Allow("127.0.0.1", "/analytics", "GET")
		if !allowed {
			t.Errorf("Expected request %d to be allowed when disabled", i+1)
		}
		if rateInfo.Limit != 0 {
			t.Errorf("Expected limit 0 when disabled, got %d", rateInfo.Limit)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/shortlists", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Test endpoint-specific limit (burst allows 5 immediately)
	for i := 0; i < 5; i++ {
		allowed, rateInfo := limiter.Allow(clientID, "/shortlists", "POST")
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
		if rateInfo.Limit != 5 {
			t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
		}
	}

	// 6th request should be denied (limit reached)
	allowed, rateInfo := limiter.Allow(clientID, "/shortlists", "POST")
	if allowed {
		t.Error("Expected 6th request to be denied")
	}
	if rateInfo.Limit != 5 {
		t.Errorf("Expected limit 5, got %d", rateInfo.Limit)
	}

	// Different endpoint should use default limit
	allowed, rateInfo = limiter.Allow(clientID, "/job-descriptions", "GET")
	if !allowed {
		t.Error("Expected different endpoint to be allowed")
	}
	if rateInfo.Limit != 1000 {
		t.Errorf("Expected default limit 1000, got %d", rateInfo.Limit)
	}
}

func TestLimiter_PrefixSharesBucket(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/job-descriptions/", Method: "GET", Limit: 2, Window: time.Hour, Burst: 2},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	for i, id := range ids[:2] {
		allowed, _ := limiter.Allow(clientID, "/job-descriptions/"+id+"/candidates", "GET")
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, info := limiter.Allow(clientID, "/job-descriptions/"+ids[2]+"/candidates", "GET")
	assert.False(t, allowed)
	assert.Positive(t, info.RetryAfter)
	assert.Equal(t, 1, limiter.bucketCount())

	// Another client has its own bucket.
	allowed, _ = limiter.Allow("10.0.0.2", "/job-descriptions/"+ids[0], "GET")
	assert.True(t, allowed)
}

func TestLimiter_Concurrent(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"
	endpoint := "/candidates/rank"
	method := "GET"

	var wg sync.WaitGroup
	allowedCount := 0
	var mu sync.Mutex

	// Make 200 concurrent requests (should only allow 100)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, _ := limiter.Allow(clientID, endpoint, method)
			if allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// Should have allowed exactly 100 requests
	if allowedCount != 100 {
		t.Errorf("Expected 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	config := &Config{
		Enabled:         true,
		DefaultLimit:    10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 100 * time.Millisecond,
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	// Create buckets for multiple clients
	for i := 0; i < 10; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/analytics", "GET")
		if !allowed {
			t.Errorf("Expected request from %s to be allowed", clientID)
		}
	}

	// Wait for cleanup
	time.Sleep(150 * time.Millisecond)
	if got := limiter.bucketCount(); got != 10 {
		t.Errorf("Expected recently used buckets to survive cleanup, got %d", got)
	}

	// Access buckets to update last access time
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/analytics", "GET")
		if !allowed {
			t.Errorf("Expected request from %s to be allowed", clientID)
		}
	}

	// Wait for cleanup again
	time.Sleep(150 * time.Millisecond)

	// Buckets should still exist (we accessed them recently)
	// This is a basic test - full cleanup testing would require more time
	// Verify that accessed buckets still work
	for i := 0; i < 5; i++ {
		clientID := fmt.Sprintf("127.0.0.%d", i+1)
		allowed, _ := limiter.Allow(clientID, "/analytics", "GET")
		if !allowed {
			t.Errorf("Expected request from %s to still be allowed after cleanup", clientID)
		}
	}
}

func TestLimiter_Burst(t *testing.T) {
	config := &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/candidates/rank", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	}
	limiter := NewLimiter(config)
	defer limiter.Stop()

	clientID := "127.0.0.1"

	// Should allow burst of 5 requests immediately
	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow(clientID, "/candidates/rank", "POST")
		if !allowed {
			t.Errorf("Expected burst request %d to be allowed", i+1)
		}
	}

	// 6th request should be denied (burst exhausted, no refill yet)
	allowed, _ := limiter.Allow(clientID, "/candidates/rank", "POST")
	if allowed {
		t.Error("Expected request after burst to be denied")
	}
}

func TestNewLimiter_NilConfig(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	if limiter == nil {
		t.Error("Expected limiter to be created with nil config")
	}

	// Should use defaults
	allowed, rateInfo := limiter.Allow("127.0.0.1", "/analytics", "GET")
	if !allowed {
		t.Error("Expected request to be allowed with default config")
	}
	if rateInfo.Limit != 600 {
		t.Errorf("Expected default limit 600, got %d", rateInfo.Limit)
	}
}

func TestLimiter_CleanupBuckets_DropsIdle(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	limiter.Allow("10.0.0.1", "/analytics", "GET")
	limiter.Allow("10.0.0.2", "/analytics", "GET")
	if got := limiter.bucketCount(); got != 2 {
		t.Fatalf("Expected 2 buckets, got %d", got)
	}

	limiter.cleanupBuckets(time.Now().Add(2 * time.Hour))
	if got := limiter.bucketCount(); got != 0 {
		t.Errorf("Expected idle buckets to be dropped, got %d", got)
	}
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 20; i++ {
		if allowed, _ := limiter.Allow("127.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Expected health check %d to be allowed", i+1)
		}
	}
}

func TestLimiter_StopTwice(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

func TestFromConfig(t *testing.T) {
	disabled := FromConfig(config.RateLimitConfig{Enabled: false, DefaultLimit: 5})
	if disabled.Enabled {
		t.Error("Expected disabled config")
	}

	cfg := FromConfig(config.RateLimitConfig{
		Enabled:      true,
		DefaultLimit: 50,
		Window:       time.Minute,
		Whitelist:    []string{" 10.0.0.1 ", ""},
		Blacklist:    []string{"10.0.0.9"},
	})
	if !cfg.Enabled || cfg.DefaultLimit != 50 || cfg.DefaultWindow != time.Minute {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.Whitelist["10.0.0.1"] || len(cfg.Whitelist) != 1 {
		t.Errorf("Unexpected whitelist: %v", cfg.Whitelist)
	}
	if !cfg.Blacklist["10.0.0.9"] {
		t.Errorf("Unexpected blacklist: %v", cfg.Blacklist)
	}
	if MatchEndpoint("/shortlists", "POST", cfg.EndpointConfigs) == nil {
		t.Error("Expected shortlist endpoint to have its own limit")
	}
}
