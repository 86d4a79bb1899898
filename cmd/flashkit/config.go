package main

import (
	"github.com/dmitrymomot/flashkit/pkg/config"
	"github.com/dmitrymomot/flashkit/pkg/httpserver"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
	"github.com/dmitrymomot/flashkit/pkg/redisevents"
)

type appConfig struct {
	Log    logger.Config      `yaml:"log"`
	HTTP   httpserver.Config  `yaml:"http"`
	Notify notify.Settings    `yaml:"notify"`
	Redis  redisevents.Config `yaml:"redis"`

	RedisEnabled bool   `env:"FLASHKIT_REDIS_ENABLED" yaml:"redis_enabled"`
	Metrics      bool   `env:"FLASHKIT_METRICS" yaml:"metrics"`
	BasePath     string `env:"FLASHKIT_BASE_PATH" yaml:"base_path"`
	NavigatorURL string `env:"FLASHKIT_NAVIGATOR_URL" yaml:"navigator_url"`
}

// loadConfig reads path when given and the environment otherwise.
func loadConfig(path string) (appConfig, error) {
	var cfg appConfig
	if path != "" {
		return cfg, config.LoadFile(path, &cfg)
	}
	return cfg, config.Load(&cfg)
}
