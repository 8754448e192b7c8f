package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment. The two
// signing secrets are the only values without a usable default.
type Config struct {
	// AccessSecret and RefreshSecret sign the two token kinds. They must
	// differ and be at least 32 bytes each.
	AccessSecret  string `env:"AUTH_ACCESS_SECRET,required"`
	RefreshSecret string `env:"AUTH_REFRESH_SECRET,required"`

	Issuer string `env:"AUTH_ISSUER" envDefault:"signet"`

	// APIBaseURL is the externally reachable base URL of this service,
	// embedded in activation links. ClientURL is where the browser is sent
	// after clicking one.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	ClientURL  string `env:"CLIENT_URL" envDefault:"http://localhost:3000"`

	// SMTP transport for activation mail. Leaving the host empty switches
	// to log-only delivery, which is only useful in development.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM" envDefault:"no-reply@localhost"`

	DatabaseFile string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	PepperFile   string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if cfg.AccessSecret == cfg.RefreshSecret {
		return Config{}, fmt.Errorf("config: access and refresh secrets must differ")
	}

	return cfg, nil
}
