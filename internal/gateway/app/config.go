package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, parsed once at startup. The required
// fields have no safe default: the secret signs every token the gateway
// issues, and the relying-party binding decides which origin passkeys are
// scoped to.
type Config struct {
	SessionSecret string `env:"SESSION_SECRET,required"`

	RPID          string `env:"PASSKEY_RP_ID,required"`
	Origin        string `env:"PASSKEY_ORIGIN,required"`
	OwnerSub      string `env:"PASSKEY_OWNER_SUB,required"`
	RPDisplayName string `env:"PASSKEY_RP_DISPLAY_NAME" envDefault:"Vibespace"`

	TokenTTLSeconds      int           `env:"TOKEN_TTL_SECONDS"       envDefault:"86400"`
	StateTTLSeconds      int           `env:"STATE_TTL_SECONDS"       envDefault:"300"`
	RegistrationTokenTTL time.Duration `env:"REGISTRATION_TOKEN_TTL"  envDefault:"24h"`

	DatabaseFile string `env:"GATEWAY_DATABASE_FILE" envDefault:"gateway.db"`

	Env                  string        `env:"ENV"                   envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

// LoadConfig reads configuration from the environment. Missing required
// variables fail here, before any dependency is initialized.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse configuration: %w", err)
	}
	return cfg, nil
}

// AccessTTL is the lifetime of issued access tokens.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// StateTTL is the lifetime of ceremony state tokens.
func (c Config) StateTTL() time.Duration {
	return time.Duration(c.StateTTLSeconds) * time.Second
}
