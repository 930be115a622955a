package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Load assembles and validates the configuration.
func Load(options ...Option) (*Config, error) {
	o := defaultOptions
	for _, opt := range options {
		opt(&o)
	}

	parser := koanf.New(".")

	if err := parser.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config defaults: %w", err)
	}

	if len(o.configFile) != 0 {
		content, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := parser.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load yaml config from %s: %w", o.configFile, err)
		}
	}

	prefix := o.envPrefix
	envProvider := env.Provider(".", env.Opt{
		Prefix:      prefix,
		EnvironFunc: o.environ,
		TransformFunc: func(key, val string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, prefix)), val
		},
	})
	if err := parser.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables to config: %w", err)
	}

	if len(o.overrides) != 0 {
		if err := parser.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to apply config overrides: %w", err)
		}
	}

	var cfg Config

	err := parser.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = cfg.APIToken
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
