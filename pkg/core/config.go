package core

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds API authentication credentials for an exchange.
type Credentials struct {
	// APIKey is the public API key identifier.
	APIKey string `json:"api_key"`
	// Secret is the private key used for signing requests.
	Secret string `json:"secret"`
	// Passphrase is an optional additional credential required by some venues.
	Passphrase string `json:"passphrase,omitempty"`
}

// Complete reports whether both the key and the secret are present.
func (c *Credentials) Complete() bool {
	return c != nil && c.APIKey != "" && c.Secret != ""
}

// Config contains the per-adapter session settings: credentials, transport
// timeouts, the rate-limit budget and the default market type used when a
// call does not specify one.
type Config struct {
	Exchange    string       `json:"exchange" validate:"required"`
	Sandbox     bool         `json:"sandbox"`
	Credentials *Credentials `json:"credentials,omitempty"`

	// DefaultType is the market type used when a call's options omit one.
	DefaultType MarketType `json:"default_type"`
	// DefaultSubType is the contract family used when options omit one.
	DefaultSubType SubType `json:"default_sub_type,omitempty"`

	// Timeout is the maximum duration of one HTTP exchange. No retry happens
	// at this layer regardless of the failure mode.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	// RateLimitCost is the cost budget refilled per RateLimitPeriod; each
	// request consumes its computed weight from it before dispatch.
	RateLimitCost   int           `json:"rate_limit_cost" validate:"min=1"`
	RateLimitPeriod time.Duration `json:"rate_limit_period" validate:"min=1ms"`

	// RecvWindow bounds how far a signed request's timestamp may lag the
	// server clock on venues that enforce one.
	RecvWindow time.Duration `json:"recv_window" validate:"min=0"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config with sensible defaults for the given
// exchange: 10s timeout, spot default type, a 1200-weight-per-minute budget,
// 5s recv window, breaker at 5 failures / 2 successes / 30s cooldown.
func DefaultConfig(exchange string) *Config {
	return &Config{
		Exchange:    exchange,
		DefaultType: MarketTypeSpot,
		Timeout:     10 * time.Second,

		RateLimitCost:   1200,
		RateLimitPeriod: time.Minute,

		RecvWindow: 5 * time.Second,

		CircuitBreakerEnabled:          true,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,

		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the config against its declared constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithSandbox toggles sandbox mode and returns the config for chaining.
func (c *Config) WithSandbox(sandbox bool) *Config {
	c.Sandbox = sandbox
	return c
}

// WithDefaultType sets the default market type and returns the config for chaining.
func (c *Config) WithDefaultType(t MarketType) *Config {
	c.DefaultType = t
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets the cost budget per period and returns the config for chaining.
func (c *Config) WithRateLimit(cost int, period time.Duration) *Config {
	c.RateLimitCost = cost
	c.RateLimitPeriod = period
	return c
}
