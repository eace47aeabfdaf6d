package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port               int     `mapstructure:"port"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}
	if config.RateLimitPerSecond <= 0 {
		errs = append(errs, errors.New("rate_limit_per_second must be greater than zero"))
	}
	if config.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("rate_limit_burst must be greater than zero"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("server.port", "PORT")
	if err != nil {
		return err
	}

	err = viper.BindEnv("server.rate_limit_per_second", "RATE_LIMIT_PER_SECOND")
	if err != nil {
		return err
	}

	return viper.BindEnv("server.rate_limit_burst", "RATE_LIMIT_BURST")
}
