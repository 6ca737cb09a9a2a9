package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_DSN,required=true"`
	RedisURL    string `env:"REDIS_URL,required=true"`
	// RabbitMQURL is optional; without it delivery events are simply not
	// published.
	RabbitMQURL            string `env:"RABBITMQ_URL"`
	CountryPrefix          string `env:"COUNTRY_PREFIX,default=55"`
	ProviderTimeoutSeconds int    `env:"PROVIDER_TIMEOUT_SECONDS,default=10"`
	TenantRateLimitPerSec  int    `env:"TENANT_RATE_LIMIT_PER_SEC,default=30"`
	APIPort                int    `env:"API_PORT,default=8080"`
	LogLevel               string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}
