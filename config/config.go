package config

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// DBConfig Database configuration
type DBConfig struct {
	Type     string `yaml:"type"` // postgres or sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	SSLMode  string `yaml:"sslmode"`
	URI      string `yaml:"uri"` // full connection string, overrides the fields above
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

// SysConfig System configuration
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
	SeedDemo bool   `yaml:"seed_demo"`
}

// WebConfig Admin API server configuration
type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LogConfig Logging configuration
type LogConfig struct {
	Mode       string `yaml:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system"`
	Web      WebConfig `yaml:"web"`
	Database DBConfig  `yaml:"database"`
	Logger   LogConfig `yaml:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return path.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return path.Join(c.System.Workdir, "data")
}

// DSN returns the driver connection string for the configured database type
func (d DBConfig) DSN(workdir string) string {
	if d.URI != "" {
		return d.URI
	}
	switch d.Type {
	case "sqlite":
		name := d.Name
		if name == "" {
			name = "toughcatalog.db"
		}
		if name == ":memory:" || strings.HasPrefix(name, "file:") || path.IsAbs(name) {
			return name
		}
		return path.Join(workdir, "data", name)
	default:
		sslmode := d.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Passwd),
			Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
			Path:     "/" + d.Name,
			RawQuery: "sslmode=" + sslmode,
		}
		return u.String()
	}
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ToughCatalog",
		Location: "Asia/Shanghai",
		Workdir:  "/var/toughcatalog",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1818,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "postgres",
		User:     "postgres",
		Passwd:   "postgres",
		SSLMode:  "disable",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/toughcatalog/toughcatalog.log",
	},
}

// LoadConfig reads the YAML file when it exists, then applies environment overrides
func LoadConfig(cfile string) (*AppConfig, error) {
	cfg := *DefaultAppConfig
	if cfile != "" {
		data, err := os.ReadFile(cfile)
		switch {
		case os.IsNotExist(err):
			// defaults and environment only
		case err != nil:
			return nil, errors.Wrapf(err, "read config %s", cfile)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", cfile)
			}
		}
	}

	setEnvValue("TOUGHCATALOG_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("TOUGHCATALOG_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("TOUGHCATALOG_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvBoolValue("TOUGHCATALOG_SYSTEM_SEED_DEMO", &cfg.System.SeedDemo)

	setEnvValue("TOUGHCATALOG_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("TOUGHCATALOG_WEB_PORT", &cfg.Web.Port)

	setEnvValue("TOUGHCATALOG_DB_TYPE", &cfg.Database.Type)
	setEnvValue("TOUGHCATALOG_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("TOUGHCATALOG_DB_PORT", &cfg.Database.Port)
	setEnvValue("TOUGHCATALOG_DB_NAME", &cfg.Database.Name)
	setEnvValue("TOUGHCATALOG_DB_USER", &cfg.Database.User)
	setEnvValue("TOUGHCATALOG_DB_PWD", &cfg.Database.Passwd)
	setEnvBoolValue("TOUGHCATALOG_DB_DEBUG", &cfg.Database.Debug)
	setEnvValue("DATABASE_URI", &cfg.Database.URI)

	setEnvValue("TOUGHCATALOG_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvBoolValue("TOUGHCATALOG_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	return &cfg, nil
}

func setEnvValue(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvBoolValue(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := cast.ToBoolE(v); err == nil {
			*val = b
		}
	}
}

func setEnvIntValue(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := cast.ToIntE(v); err == nil {
			*val = i
		}
	}
}
