package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/candidate-ranker/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the ranker's settings.
func FromConfig(c config.RateLimitConfig) *Config {
	if !c.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    c.DefaultLimit,
		DefaultWindow:   c.Window,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       toSet(c.Whitelist),
		Blacklist:       toSet(c.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Fan-out across job descriptions (strictest)
		{Path: "/shortlists", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Ranking requests
		{Path: "/candidates/rank", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/candidates/rank", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/job-descriptions/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},

		// Everything else uses the default limit; /health is unlimited.
	}
}

func toSet(items []string) map[string]bool {
	result := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result[item] = true
		}
	}
	return result
}
