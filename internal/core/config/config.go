package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// SweetTracker holds the upstream tracking API configuration.
	SweetTracker SweetTrackerConfig `mapstructure:",squash"`

	// Cache holds the cache backend configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Outbound holds outbound HTTP client settings.
	Outbound OutboundConfig `mapstructure:",squash"`
}

// SweetTrackerConfig holds the credentials for the Sweet Tracker API.
// An empty APIKey switches the tracking adapter into mock mode.
type SweetTrackerConfig struct {
	// APIKey is the Sweet Tracker API key (t_key).
	APIKey string `mapstructure:"SWEET_TRACKER_API_KEY"`
	// BaseURL is the base URL of the Sweet Tracker API.
	BaseURL string `mapstructure:"SWEET_TRACKER_BASE_URL" default:"http://info.sweettracker.co.kr/api/v1"`
}

// CacheConfig holds cache backend connection details.
type CacheConfig struct {
	// RedisURL is the Redis connection URL. Empty selects the in-process cache.
	RedisURL string `mapstructure:"REDIS_URL"`
	// CompanyListTTLMinutes is how long the upstream company list stays cached.
	CompanyListTTLMinutes int `mapstructure:"COMPANY_LIST_TTL_MINUTES" default:"60"`
}

// OutboundConfig holds settings for outbound HTTP requests.
type OutboundConfig struct {
	// RequestTimeoutSeconds bounds each upstream request.
	RequestTimeoutSeconds int `mapstructure:"REQUEST_TIMEOUT_SECONDS" default:"30"`
	// RequestsPerSecond limits the outbound request rate to the upstream API.
	RequestsPerSecond float64 `mapstructure:"OUTBOUND_RPS" default:"5"`
}

// RequestTimeout returns the outbound request timeout as a duration.
func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Outbound.RequestTimeoutSeconds) * time.Second
}

// CompanyListTTL returns the company list cache TTL as a duration.
func (c *AppConfig) CompanyListTTL() time.Duration {
	return time.Duration(c.Cache.CompanyListTTLMinutes) * time.Minute
}

// MockMode reports whether the upstream adapter should serve simulated data.
func (c *AppConfig) MockMode() bool {
	return c.SweetTracker.APIKey == ""
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
