package prediction

import (
	"fmt"
	"os"
)

// Environment variables holding the upstream endpoint and its bearer token.
const (
	EnvURL         = "FLASK_URL"
	EnvSecretToken = "FLASK_SECRET_TOKEN"
)

// Config holds the upstream prediction endpoint and the credential used to call it.
// It is read once and handed to NewClient; the client never looks at the
// environment again.
type Config struct {
	// Endpoint is the absolute URL requests are POSTed to.
	Endpoint string

	// Token is sent as "Authorization: Bearer <Token>".
	Token string
}

// NewConfig reads FLASK_URL and FLASK_SECRET_TOKEN from the environment.
func NewConfig() *Config {
	return &Config{
		Endpoint: os.Getenv(EnvURL),
		Token:    os.Getenv(EnvSecretToken),
	}
}

// Validate reports missing values. NewClient does not call it: a client built
// from an incomplete Config fails each call with ErrPredictionRequestFailed.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("prediction: missing %s", EnvURL)
	}
	if c.Token == "" {
		return fmt.Errorf("prediction: missing %s", EnvSecretToken)
	}
	return nil
}
