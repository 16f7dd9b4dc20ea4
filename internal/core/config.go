package core

import (
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/ImQQiaoO/DES-Lab/cripta"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config contains every option the deslab commands read.
type Config struct {
	// Number of goroutines the block pipeline is split across.
	Workers int `mapstructure:"workers"`
	// 8-byte DES key as 16 hex digits.
	Key string `mapstructure:"key"`
	// Suffix appended to encrypted file names.
	OutputSuffix string `mapstructure:"output_suffix"`

	Logging struct {
		// Minimum level of a log required to be written. Options: debug, info, warn, error
		LogLevel string `mapstructure:"log_level"`
		// Full path to file to which logs will be written. Blank will write to stdout.
		LogFilePath string `mapstructure:"log_file_path"`
	} `mapstructure:"logging"`

	Cache struct {
		// How long a derived subkey schedule is kept.
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
}

const envVarPrefix = "DESLAB"

// flagKeys maps command line flag names to their config keys.
var flagKeys = map[string]string{
	"workers":   "workers",
	"key":       "key",
	"log-level": "logging.log_level",
	"log-file":  "logging.log_file_path",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("key", "")
	v.SetDefault("output_suffix", ".enc")
	v.SetDefault("logging.log_level", "info")
	v.SetDefault("logging.log_file_path", "")
	v.SetDefault("cache.ttl", 10*time.Minute)
}

// LoadConfig reads config.yaml from configPath if one exists, then applies
// environment overrides and any flags bound from flags (which may be nil).
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.AddConfigPath(configPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envVarPrefix)
	v.AutomaticEnv()

	// This allows us to set nested yaml config options through environment
	// variables. For example, logging.log_level can be set using: <envVarPrefix>_LOGGING_LOG_LEVEL
	for _, k := range v.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := v.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			return nil, fmt.Errorf("error binding %s to %s: %w", k, envVarPrefix+"_"+envVar, err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config object: %w", err)
	}
	return config, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("error binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// Validate reports options that would make every command fail.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: got %d", cripta.ErrInvalidWorkers, c.Workers)
	}
	if c.OutputSuffix == "" {
		return errors.New("output_suffix cannot be empty")
	}
	return nil
}

// KeyBytes decodes the configured hex key.
func (c *Config) KeyBytes() ([]byte, error) {
	if c.Key == "" {
		return nil, errors.New("no key configured")
	}

	key, err := hex.DecodeString(c.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid hex key: %w", err)
	}
	if len(key) != cripta.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", cripta.ErrInvalidKeyLength, len(key))
	}
	return key, nil
}
