package serve

import (
	"net"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the host transport settings, loaded from the environment.
type Config struct {
	Host string `env:"HTTP_HOST" envDefault:""`
	Port string `env:"HTTP_PORT" envDefault:"8080"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// EnableH2C serves cleartext HTTP/2 alongside HTTP/1.1.
	EnableH2C bool `env:"HTTP_H2C" envDefault:"false"`

	// Hostname overrides the value of the X-Server-Hostname response
	// header. When empty, os.Hostname is used.
	Hostname string `env:"SERVER_HOSTNAME"`
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory is applied first when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
