package config

import (
	"fmt"
	"time"

	coreconfig "github.com/go-core-fx/config"
)

type Config struct {
	BaseURL     string        `koanf:"base_url"`
	Timeout     time.Duration `koanf:"timeout"`
	Concurrency int           `koanf:"concurrency"`
	BatchFile   string        `koanf:"batch_file"`
	Format      string        `koanf:"format"`
	LogFile     string        `koanf:"log_file"`
	Debug       bool          `koanf:"debug"`
}

func Default() Config {
	return Config{
		Timeout:   30 * time.Second,
		BatchFile: "request.data",
		Format:    "text",
		LogFile:   "./receipt-check.log",
	}
}

func New() (Config, error) {
	cfg := Default()

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}
