package config

import "os"

// EnvPrefix is the prefix of every environment variable the config is read from.
const EnvPrefix = "FASTLY_"

type opts struct {
	configFile string
	envPrefix  string
	environ    func() []string
	overrides  map[string]any
}

var defaultOptions = opts{ //nolint:gochecknoglobals
	envPrefix: EnvPrefix,
	environ:   os.Environ,
}

// Option customises how Load assembles the configuration.
type Option func(*opts)

// WithConfigFile loads the given YAML file on top of the defaults.
func WithConfigFile(path string) Option {
	return func(o *opts) {
		o.configFile = path
	}
}

// WithEnvPrefix changes the prefix environment variables must carry.
func WithEnvPrefix(prefix string) Option {
	return func(o *opts) {
		if len(prefix) != 0 {
			o.envPrefix = prefix
		}
	}
}

// WithEnviron replaces the source of environment variables.
func WithEnviron(environ func() []string) Option {
	return func(o *opts) {
		if environ != nil {
			o.environ = environ
		}
	}
}

// WithOverrides applies the given values last, keyed by config key.
func WithOverrides(overrides map[string]any) Option {
	return func(o *opts) {
		o.overrides = overrides
	}
}
