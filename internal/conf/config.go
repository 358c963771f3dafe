package conf

import (
	"github.com/caarlos0/env/v6"
)

type App struct {
	// LogLevel is a zap level name. Logs go to stderr.
	LogLevel string `env:"QSAMPLER_LOG_LEVEL" envDefault:"warn"`

	// Seed for the random source. Zero means seeding from the current time.
	Seed int64 `env:"QSAMPLER_SEED" envDefault:"0"`

	// Session is a name of the current user or machine, stored with every draw.
	Session string `env:"QSAMPLER_SESSION" envDefault:"local-laptop"`

	// PrometheusBind is a listen address for /metrics. Empty disables metrics server.
	PrometheusBind string `env:"PROMETHEUS_BIND"`

	// PostgresDSN is a DSN for the draw journal. Empty disables the journal.
	PostgresDSN string `env:"POSTGRES_DSN"`

	DebugDB bool `env:"DEBUG_DB" envDefault:"false"`
}

func ParseEnv() (*App, error) {
	cfg := App{}
	err := env.Parse(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
