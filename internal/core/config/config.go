package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

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
	// RedisURL enables Redis-backed snapshot persistence when set
	// (redis://host:port). Empty means in-memory snapshots only.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Tracking holds the polling configuration.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Couriers holds the per-courier endpoint configuration.
	Couriers CouriersConfig `mapstructure:",squash"`
}

// TrackingConfig holds the tracked numbers and polling knobs.
type TrackingConfig struct {
	// TrackingNumbers is the comma- or newline-separated list of numbers
	// to track at startup. Entries may carry an optional display name
	// after a colon, e.g. "SE123456789GR:Shoes".
	TrackingNumbers string `mapstructure:"TRACKING_NUMBERS"`
	// ScanIntervalMinutes is the interval between refresh cycles.
	ScanIntervalMinutes int `mapstructure:"SCAN_INTERVAL_MINUTES" default:"30"`
	// FetchTimeoutSeconds bounds each courier request within a cycle.
	FetchTimeoutSeconds int `mapstructure:"FETCH_TIMEOUT_SECONDS" default:"30"`
	// FetchConcurrency bounds parallel fetches within a cycle.
	FetchConcurrency int `mapstructure:"FETCH_CONCURRENCY" default:"4"`
}

// CouriersConfig holds the courier endpoints. Overridable for testing
// against local fixtures.
type CouriersConfig struct {
	// EltaURL is the ELTA Courier site root.
	EltaURL string `mapstructure:"COURIER_ELTA_URL" default:"https://www.elta-courier.gr"`
	// ACSURL is the ACS Courier API root.
	ACSURL string `mapstructure:"COURIER_ACS_URL" default:"https://api.acscourier.net"`
	// SpeedexURL is the SpeedEx track-and-trace page.
	SpeedexURL string `mapstructure:"COURIER_SPEEDEX_URL" default:"http://www.speedex.gr/speedex/NewTrackAndTrace.aspx"`
	// BoxNowURL is the Box Now parcel tracking endpoint.
	BoxNowURL string `mapstructure:"COURIER_BOXNOW_URL" default:"https://api-production.boxnow.gr/api/v1/parcels:track"`
	// CourierCenterURL is the Courier Center result page.
	CourierCenterURL string `mapstructure:"COURIER_CENTER_URL" default:"https://courier.gr/track/result"`
	// GenikiURL is the Geniki Taxydromiki site root.
	GenikiURL string `mapstructure:"COURIER_GENIKI_URL" default:"https://www.taxydromiki.com"`
}

// Entry is one parsed tracking number with an optional display name.
type Entry struct {
	// TrackingNumber is the trimmed tracking number.
	TrackingNumber string
	// Name is the optional display name, empty when not given.
	Name string
}

// Entries parses TrackingNumbers into trimmed, de-duplicated entries.
func (t TrackingConfig) Entries() []Entry {
	seen := make(map[string]bool)
	var out []Entry

	fields := strings.FieldsFunc(t.TrackingNumbers, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	for _, field := range fields {
		number, name, _ := strings.Cut(field, ":")
		number = strings.TrimSpace(number)
		if number == "" || seen[number] {
			continue
		}
		seen[number] = true
		out = append(out, Entry{
			TrackingNumber: number,
			Name:           strings.TrimSpace(name),
		})
	}
	return out
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
