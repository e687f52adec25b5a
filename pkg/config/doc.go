// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// optional `.env` files are read into the process environment first (values
// already exported by the shell win), then the environment is parsed into a
// struct using `env` field tags.
//
// # Usage
//
//	type Config struct {
//	    AppID      string        `env:"ONESIGNAL_APP_ID,required"`
//	    RESTAPIKey string        `env:"ONESIGNAL_REST_API_KEY,required"`
//	    Timeout    time.Duration `env:"ONESIGNAL_TIMEOUT" envDefault:"30s"`
//	}
//
//	cfg, err := config.LoadFrom[Config]("./.env.local")
//	if err != nil {
//	    log.Fatalf("config: %v", err)
//	}
//
// # Error Handling
//
//   - `ErrParsingConfig`  – env vars could not be parsed into the struct.
//   - `ErrLoadingEnvFile` – an explicitly named .env file could not be read.
//   - `ErrNilPointer`     – nil pointer passed to `Load`/`MustLoad`.
package config
