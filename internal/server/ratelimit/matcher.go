package ratelimit

import "strings"

// unlimited holds "METHOD path" keys that bypass rate limiting.
var unlimited = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint returns the configuration for a request, or nil when the
// default limit applies. An exact path wins over a prefix; among prefixes
// (paths ending in "/") the longest wins. An empty Method matches any method.
// Unlimited endpoints get a config with a zero Limit.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	var prefix *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != "" && cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			if prefix == nil || len(cfg.Path) > len(prefix.Path) {
				prefix = cfg
			}
		}
	}
	return prefix
}
