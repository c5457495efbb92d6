package constants

import "time"

var CacheTTL = struct {
	Location time.Duration
}{
	Location: 30 * 24 * time.Hour, // shared Redis copy only; the process cache never expires
}

var CacheKeys = struct {
	LocationPrefix string
}{
	LocationPrefix: "bandseeking:location:",
}

var GeocodingConfig = struct {
	BaseURL           string
	UserAgent         string
	CountryCode       string
	Timeout           time.Duration
	RequestsPerSecond float64
}{
	BaseURL:           "https://nominatim.openstreetmap.org",
	UserAgent:         "BandSeeking/1.0 (https://bandseeking.com)",
	CountryCode:       "us",
	Timeout:           10 * time.Second,
	RequestsPerSecond: 1, // Nominatim public usage policy
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
}{
	FailureThreshold: 5,
	ResetTimeout:     30 * time.Second,
}

var LocationConfig = struct {
	LookupTimeout time.Duration
}{
	LookupTimeout: 10 * time.Second,
}

var ServerConfig = struct {
	ReadHeaderTimeout  time.Duration
	ShutdownTimeout    time.Duration
	HealthCheckTimeout time.Duration
	RequestIDHeader    string
}{
	ReadHeaderTimeout:  5 * time.Second,
	ShutdownTimeout:    10 * time.Second,
	HealthCheckTimeout: 2 * time.Second,
	RequestIDHeader:    "X-Request-ID",
}
