package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

func (config AuthConfig) validate() error {
	var errs []error

	if config.JWTSecret == "" {
		errs = append(errs, errors.New("missing variable: jwt_secret"))
	}
	if config.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be greater than zero"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config AuthConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	if err != nil {
		return err
	}

	return viper.BindEnv("auth.token_ttl", "TOKEN_TTL")
}
