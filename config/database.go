package config

// DBConfig contains PostgreSQL configuration for the one-time database
// bootstrap commands (init-db, seed). The running dashboard itself never
// touches the database; it only consumes the backend REST API.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Name     string `env:"NAME"     envDefault:"carcare"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production

	// AppRole is the login role created for the backend application.
	AppRole string `env:"APP_ROLE" envDefault:"carcare"`
	// AppRolePassword is the password assigned to AppRole.
	AppRolePassword string `env:"APP_ROLE_PASSWORD" envDefault:"carcare_password"`
}

// RedisConfig contains Redis configuration for the session store.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
