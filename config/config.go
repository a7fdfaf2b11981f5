package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	App struct {
		Name string `mapstructure:"NAME"`
		Port string `mapstructure:"PORT"`
	}

	DATABASE struct {
		Postgres struct {
			DSN string `mapstructure:"URL"`
		}
		Redis struct {
			Addr     string `mapstructure:"ADDR"`
			Password string `mapstructure:"PASSWORD"`
		}
		Mongo struct {
			Url string `mapstructure:"URL"`
		}
	}

	ENGINE struct {
		WorkerNum         int   `mapstructure:"WORKER_NUM"`
		DedupTTLSeconds   int   `mapstructure:"DEDUP_TTL_SECONDS"`
		DedupMaxEntries   int   `mapstructure:"DEDUP_MAX_ENTRIES"`
		NotifExpiryDays   int   `mapstructure:"NOTIF_EXPIRY_DAYS"`
		NotifDedupSeconds int   `mapstructure:"NOTIF_DEDUP_SECONDS"`
		SweepMinutes      int64 `mapstructure:"SWEEP_MINUTES"`
	}
}

var Conf *AppConfig

func LoadConfig() error {
	viper.SetConfigName("application")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("FIXMYSOCIETY")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	applyEngineDefaults(&config)

	Conf = &config
	log.Info().Msg("configuration loaded...")
	return nil
}

func applyEngineDefaults(c *AppConfig) {
	if c.ENGINE.WorkerNum <= 0 {
		c.ENGINE.WorkerNum = 5
	}
	if c.ENGINE.DedupTTLSeconds <= 0 {
		c.ENGINE.DedupTTLSeconds = 10
	}
	if c.ENGINE.DedupMaxEntries <= 0 {
		c.ENGINE.DedupMaxEntries = 4096
	}
	if c.ENGINE.NotifExpiryDays <= 0 {
		c.ENGINE.NotifExpiryDays = 30
	}
	if c.ENGINE.NotifDedupSeconds <= 0 {
		c.ENGINE.NotifDedupSeconds = 30
	}
	if c.ENGINE.SweepMinutes <= 0 {
		c.ENGINE.SweepMinutes = 60
	}
}
