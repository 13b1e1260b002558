package config

import "fmt"

// DBConfig contains PostgreSQL database configuration. URL wins when
// set; the discrete fields exist for environments that configure the
// connection piecewise.
type DBConfig struct {
	// URL is the full connection string (DATABASE_URL). Required in
	// production; when empty the discrete fields below are used.
	URL string `env:"URL,expand" envDefault:"${DATABASE_URL}"`

	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"whirkplace"`
	Password string `env:"PASSWORD" envDefault:"whirkplace"`
	Name     string `env:"NAME"     envDefault:"whirkplace"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production

	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// DSN returns the effective connection string.
func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// RedisConfig contains Redis configuration for the session and demo
// token stores.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
