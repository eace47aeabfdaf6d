package config

import (
	"errors"

	"github.com/spf13/viper"
)

type JobsConfig struct {
	ListingRetentionDays int  `mapstructure:"listing_retention_days"`
	SeedSampleData       bool `mapstructure:"seed_sample_data"`
}

func (config JobsConfig) validate() error {
	if config.ListingRetentionDays <= 0 {
		return errors.New("listing_retention_days must be greater than zero")
	}
	return nil
}

func (config JobsConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("jobs.listing_retention_days", "LISTING_RETENTION_DAYS")
	if err != nil {
		return err
	}

	return viper.BindEnv("jobs.seed_sample_data", "SEED_SAMPLE_DATA")
}
