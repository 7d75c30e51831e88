package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	latteerrors "github.com/arthur-debert/latte/pkg/errors"
	"github.com/arthur-debert/latte/pkg/logging"
)

// EnvPrefix is the prefix of environment variables read into the configuration
const EnvPrefix = "LATTE_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// GetDefaultsContent returns the embedded defaults file
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// Default returns the built-in configuration, ignoring files and environment
func Default() *Config {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("embedded defaults.toml is invalid: " + err.Error())
	}
	cfg, err := unmarshal(k)
	if err != nil {
		panic("embedded defaults.toml is invalid: " + err.Error())
	}
	return cfg
}

// Load builds the configuration from the embedded defaults, configFile (if
// it exists) and the environment
func Load(configFile string) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, latteerrors.Wrap(err, latteerrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Load user config if it exists
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
				return nil, latteerrors.Wrapf(err, latteerrors.ErrConfigLoad, "failed to load config from %s", configFile)
			}
			log.Debug().Str("path", configFile).Msg("Loaded user config")
		} else if !os.IsNotExist(err) {
			return nil, latteerrors.Wrapf(err, latteerrors.ErrConfigLoad, "failed to stat config %s", configFile)
		}
	}

	// 3. Load env vars
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, latteerrors.Wrap(err, latteerrors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Unmarshal
	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}

	// 5. Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, latteerrors.Wrap(err, latteerrors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}
