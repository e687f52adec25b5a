package onesignal

import (
	"errors"
	"time"

	"github.com/dmitrymomot/onesignal/pkg/config"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://onesignal.com/api/v1"

// Config holds client settings loaded from the environment.
type Config struct {
	AppID          string        `env:"ONESIGNAL_APP_ID,required,notEmpty"`
	RESTAPIKey     string        `env:"ONESIGNAL_REST_API_KEY,required,notEmpty"`
	BaseURL        string        `env:"ONESIGNAL_BASE_URL" envDefault:"https://onesignal.com/api/v1"`
	DefaultSegment string        `env:"ONESIGNAL_DEFAULT_SEGMENT"`
	Timeout        time.Duration `env:"ONESIGNAL_TIMEOUT" envDefault:"30s"`
	Debug          bool          `env:"ONESIGNAL_DEBUG"`
}

// LoadConfig reads the optional .env files and parses the environment.
func LoadConfig(files ...string) (Config, error) {
	cfg, err := config.LoadFrom[Config](files...)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// ClientOptions converts the config into client options.
func (c Config) ClientOptions() ClientOptions {
	return NewClientOptions(c.AppID, c.RESTAPIKey).
		WithBaseURL(c.BaseURL).
		WithDefaultSegment(c.DefaultSegment)
}
