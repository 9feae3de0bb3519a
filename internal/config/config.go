package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Ключи конфигурации: они же имена флагов (с "-" вместо "_") и
// переменных окружения REFBOOKS_<KEY>.
const (
	KeyPort        = "port"
	KeyDBDriver    = "db_driver"
	KeyDBURL       = "db_url"
	KeySQLitePath  = "sqlite_path"
	KeyAutoMigrate = "auto_migrate"
	KeySeedDir     = "seed_dir"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"

	EnvPrefix = "REFBOOKS"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port        string `mapstructure:"port"`
	DBDriver    string `mapstructure:"db_driver"`   // memory (default) | sqlite | postgres
	DBURL       string `mapstructure:"db_url"`      // для postgres
	SQLitePath  string `mapstructure:"sqlite_path"` // для sqlite
	AutoMigrate bool   `mapstructure:"auto_migrate"`

	// Папка с YAML-справочниками: для memory загружается при старте, для seed это значение по умолчанию.
	SeedDir string `mapstructure:"seed_dir"`

	LogLevel  string `mapstructure:"log_level"`  // debug | info | warn | error
	LogFormat string `mapstructure:"log_format"` // text | json
}

func def() Config {
	return Config{
		Port:        "8080",
		DBDriver:    DriverMemory,
		DBURL:       "",
		SQLitePath:  "refbooks.db",
		AutoMigrate: false,
		SeedDir:     "reference/refbooks",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// RegisterFlags добавляет флаги для всех ключей (значения по умолчанию берутся из def()).
func RegisterFlags(fs *pflag.FlagSet) {
	c := def()
	fs.String("port", c.Port, "HTTP port")
	fs.String("db-driver", c.DBDriver, "Storage driver (memory/sqlite/postgres)")
	fs.String("db-url", c.DBURL, "Postgres URL")
	fs.String("sqlite-path", c.SQLitePath, "SQLite database file")
	fs.Bool("auto-migrate", c.AutoMigrate, "Apply schema DDL on start")
	fs.String("seed-dir", c.SeedDir, "Directory with YAML catalogs")
	fs.String("log-level", c.LogLevel, "Log level (debug/info/warn/error)")
	fs.String("log-format", c.LogFormat, "Log format (text/json)")
}

// Load: значения по умолчанию -> файл (если задан) -> ENV -> флаги (только явно указанные).
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	c := def()
	v.SetDefault(KeyPort, c.Port)
	v.SetDefault(KeyDBDriver, c.DBDriver)
	v.SetDefault(KeyDBURL, c.DBURL)
	v.SetDefault(KeySQLitePath, c.SQLitePath)
	v.SetDefault(KeyAutoMigrate, c.AutoMigrate)
	v.SetDefault(KeySeedDir, c.SeedDir)
	v.SetDefault(KeyLogLevel, c.LogLevel)
	v.SetDefault(KeyLogFormat, c.LogFormat)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range []string{KeyPort, KeyDBDriver, KeyDBURL, KeySQLitePath, KeyAutoMigrate, KeySeedDir, KeyLogLevel, KeyLogFormat} {
			if f := fs.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	out.normalize()
	if err := out.Validate(); err != nil {
		return Config{}, err
	}
	return out, nil
}

func (c *Config) normalize() {
	c.Port = strings.TrimSpace(c.Port)
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBURL = strings.TrimSpace(c.DBURL)
	c.SQLitePath = strings.TrimSpace(c.SQLitePath)
	c.SeedDir = strings.TrimSpace(c.SeedDir)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DBURL == "" {
			errs = append(errs, errors.New("db_url is required for postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown db_driver %q (allowed: memory|sqlite|postgres)", c.DBDriver))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q (allowed: text|json)", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Addr: адрес для http.Server.
func (c Config) Addr() string { return ":" + c.Port }
