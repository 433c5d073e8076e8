package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Store backends understood by the CLI.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendRedis    = "redis"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Store struct {
		Backend string
		Path    string
	}
	Database struct {
		Path string
	}
	Postgres struct {
		URL string
	}
	Storage struct {
		Bucket   string
		Key      string
		Region   string
		Endpoint string
	}
	AWS struct {
		Profile string
	}
	Redis struct {
		URL string
		Key string
	}
	Log struct {
		Level string
	}
	Metrics struct {
		Textfile string
	}
}

// Options tune where Load looks for configuration.
type Options struct {
	// ConfigFile, when set, is read instead of searching for config.* in the working directory.
	ConfigFile string
	// EnvFile is the dotenv file exported before reading the environment; defaults to ".env".
	EnvFile string
	// Flags are bound over env and file values; a flag named "backend" overrides store.backend.
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"backend":   "store.backend",
	"path":      "store.path",
	"log-level": "log.level",
}

// Load reads configuration from environment variables, optional config files and flags.
func Load(opts Options) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotEnv(envFile); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("USERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.backend", BackendFile)
	v.SetDefault("store.path", "users.json")
	v.SetDefault("database.path", "data/users.db")
	v.SetDefault("postgres.url", "")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.key", "users.json")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.key", "users")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.textfile", "")

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Store.Backend = strings.ToLower(strings.TrimSpace(cfg.Store.Backend))

	return cfg, nil
}

// loadDotEnv exports the variables in path without overriding ones already set.
func loadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
