package redisevents

import "time"

// Config holds the Redis connection and channel settings. Fields are read
// from the environment with caarlos0/env or from YAML.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" yaml:"url"` // redis://:password@host:6379/0
	Channel        string        `env:"FLASHKIT_REDIS_CHANNEL" envDefault:"flashkit:events" yaml:"channel"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s" yaml:"connect_timeout"`
}
