// Package config resolves runtime settings from flags, REBOR_* environment
// variables, an optional .env file and an optional rebor.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "REBOR"
	configName = "rebor"
	configType = "toml"

	KeyAccountsPath = "accounts.path"
	KeyAPIEndpoint  = "api.endpoint"
	KeyAPIOrigin    = "api.origin"
	KeyAPITimeout   = "api.timeout"
	KeyDelayShort   = "delay.short"
	KeyDelayLong    = "delay.long"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"

	DefaultAccountsPath = "data.txt"
	DefaultAPIEndpoint  = "https://r8-server-production.up.railway.app/api/task/task"
	DefaultAPIOrigin    = "https://rebor-app.vercel.app"
	DefaultDelayShort   = time.Second
	DefaultDelayLong    = time.Hour
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	AccountsPath string        `validate:"required"`
	APIEndpoint  string        `validate:"required,http_url"`
	APIOrigin    string        `validate:"required,http_url"`
	APITimeout   time.Duration `validate:"gte=0"`
	DelayShort   time.Duration `validate:"gt=0"`
	DelayLong    time.Duration `validate:"gt=0"`
	LogLevel     string        `validate:"oneof=debug info warn error"`
	LogFormat    string        `validate:"oneof=text json"`
}

type Options struct {
	// ConfigFile is an explicit config path. Empty searches the working
	// directory for rebor.toml and tolerates its absence.
	ConfigFile string
	// EnvFiles are loaded with godotenv before reading the environment.
	// Missing files are skipped; variables already set win.
	EnvFiles []string
}

// New returns a viper instance carrying the defaults and environment
// binding. Callers may bind flags onto it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAccountsPath, DefaultAccountsPath)
	v.SetDefault(KeyAPIEndpoint, DefaultAPIEndpoint)
	v.SetDefault(KeyAPIOrigin, DefaultAPIOrigin)
	v.SetDefault(KeyAPITimeout, time.Duration(0))
	v.SetDefault(KeyDelayShort, DefaultDelayShort)
	v.SetDefault(KeyDelayLong, DefaultDelayLong)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func Load(v *viper.Viper, opts Options) (Config, error) {
	if v == nil {
		v = New()
	}

	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return Config{}, err
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return Config{}, err
	}

	cfg := Config{
		AccountsPath: strings.TrimSpace(v.GetString(KeyAccountsPath)),
		APIEndpoint:  strings.TrimSpace(v.GetString(KeyAPIEndpoint)),
		APIOrigin:    strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIOrigin)), "/"),
		APITimeout:   v.GetDuration(KeyAPITimeout),
		DelayShort:   v.GetDuration(KeyDelayShort),
		DelayLong:    v.GetDuration(KeyDelayLong),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogFormat))),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func loadEnvFiles(paths []string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	return nil
}
