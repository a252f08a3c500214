package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/lukehollenback/coinbase-api/constants"
	"github.com/lukehollenback/coinbase-api/exchange/coinbase"
)

//
// ErrMissingCredentials is returned when a command that needs an API key is run without one.
//
var ErrMissingCredentials = errors.New("missing API credentials")

//
// Config is everything the command line tool reads from its environment. Each field is read from
// a COINBASE_ prefixed variable (e.g. COINBASE_API_KEY).
//
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"sandbox" validate:"oneof=sandbox live"`
	Key         string `envconfig:"API_KEY"`
	Secret      string `envconfig:"API_SECRET" validate:"omitempty,base64"`
	Passphrase  string `envconfig:"API_PASSPHRASE"`
	UserAgent   string `envconfig:"USER_AGENT"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warning" validate:"oneof=panic fatal error warn warning info debug trace"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=text json"`
	LogFile     string `envconfig:"LOG_FILE"`
}

//
// LoadConfig loads the provided .env file (or ./.env, if it exists, when envFile is empty) into the
// process environment, then reads and validates the configuration from it. Variables that are
// already set take precedence over the file.
//
func LoadConfig(envFile string) (*Config, error) {
	path := envFile
	if path == "" {
		path = constants.DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	var cfg Config

	if err := envconfig.Process(constants.EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read the environment: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

//
// Env returns the Coinbase Pro environment the configuration points at.
//
func (o *Config) Env() (coinbase.Environment, error) {
	return coinbase.ParseEnvironment(o.Environment)
}

//
// Credentials returns the configured API credentials, or ErrMissingCredentials naming the
// variables that are not set.
//
func (o *Config) Credentials() (coinbase.Credentials, error) {
	var missing []string

	if o.Key == "" {
		missing = append(missing, constants.EnvPrefix+"_API_KEY")
	}

	if o.Secret == "" {
		missing = append(missing, constants.EnvPrefix+"_API_SECRET")
	}

	if o.Passphrase == "" {
		missing = append(missing, constants.EnvPrefix+"_API_PASSPHRASE")
	}

	if len(missing) > 0 {
		return coinbase.Credentials{}, fmt.Errorf("%w: set %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return coinbase.Credentials{Key: o.Key, Secret: o.Secret, Passphrase: o.Passphrase}, nil
}
