package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Admin AdminConfig
	HTTP  HTTPConfig
	Audit AuditConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET, required"`
	JWTIssuer          string        `env:"JWT_ISSUER,           default=lostfound-api"`
	TokenTTL           time.Duration `env:"TOKEN_TTL,            default=15m"`
	BcryptCost         int           `env:"BCRYPT_COST,          default=10"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=5"`
	LoginLockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
	PublicPaths        []string      `env:"AUTH_PUBLIC_PATHS,    default=/auth/register,/auth/login,/auth/bootstrap-admin"`
}

type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL, default=admin@lostfound.local"`
	Name     string `env:"ADMIN_NAME,  default=Administrator"`
	Password string `env:"ADMIN_PASSWORD, required"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
	AuthRatePerSecond  float64  `env:"AUTH_RATE_PER_SECOND, default=5"`
	AuthRateBurst      int      `env:"AUTH_RATE_BURST,      default=10"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,           default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,            default=lostfound"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=100"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=10"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.Auth.LoginLockoutWindow <= 0 {
		return errors.New("LOGIN_LOCKOUT_WINDOW must be positive")
	}
	if c.HTTP.AuthRatePerSecond <= 0 || c.HTTP.AuthRateBurst <= 0 {
		return errors.New("AUTH_RATE_PER_SECOND and AUTH_RATE_BURST must be positive")
	}
	return nil
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}
