package config

import "time"

type HTTPConfig interface {
	GetRequestTimeout() time.Duration
	GetUserAgent() string
}

type HTTP struct{}

var _ HTTPConfig = HTTP{}

func (HTTP) GetRequestTimeout() time.Duration {
	raw := GetEnv("INSIGHT_HTTP_TIMEOUT", "")
	if raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return 30 * time.Second
}

func (HTTP) GetUserAgent() string {
	return "insight-code-go/1.0.0"
}
