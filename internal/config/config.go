package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/MatBureau/devops-health/internal/logging"
)

const (
	EnvPrefix      = "DEVOPS_HEALTH"
	configFileName = "config"

	DefaultHost           = "0.0.0.0"
	DefaultPort           = 5000
	DefaultCPUInterval    = time.Second
	DefaultDiskPath       = "/"
	DefaultEnvVar         = "FLASK_ENV"
	DefaultLogLevel       = "info"
	DefaultReadTimeout    = 5 * time.Second
	DefaultWriteTimeout   = 10 * time.Second
	DefaultIdleTimeout    = 60 * time.Second
	DefaultShutdownPeriod = 5 * time.Second
)

type Config struct {
	Path string
	Http HttpConfig

	CPUSampleInterval time.Duration
	DiskPath          string
	EnvVar            string
	LogLevel          string

	// Level is LogLevel parsed by Validate.
	Level slog.Level
}

type HttpConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func (h HttpConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

func (c *Config) Validate() error {
	if c.Http.Port < 1 || c.Http.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Http.Port)
	}
	if c.CPUSampleInterval < 0 {
		return fmt.Errorf("invalid cpu sample interval %s", c.CPUSampleInterval)
	}
	if strings.TrimSpace(c.DiskPath) == "" {
		return errors.New("disk path is required")
	}
	if strings.TrimSpace(c.EnvVar) == "" {
		return errors.New("environment variable name is required")
	}
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	c.Level = level
	return nil
}

// BindFlags registers the command line flags understood by Load.
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Path to a config file (json, yaml or toml)")
	fs.String("host", DefaultHost, "Address to bind the server")
	fs.IntP("port", "p", DefaultPort, "Port to bind the server")
	fs.Duration("cpu-interval", DefaultCPUInterval, "CPU utilisation sampling window")
	fs.String("disk-path", DefaultDiskPath, "Filesystem path reported in disk usage")
	fs.String("env-var", DefaultEnvVar, "Environment variable holding the deployment environment")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
}

// Load resolves the configuration from, in increasing priority: defaults, the
// config file, DEVOPS_HEALTH_* environment variables (a .env file in the
// working directory is loaded first) and flags that were set explicitly.
func Load(fs *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("dotenv load", "error", err)
	}

	v := viper.New()
	setDefaults(v)

	configFile := ""
	if fs != nil {
		configFile, _ = fs.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(configFileName)
	}

	if err := v.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if configFile != "" || (!enoent && !notFound) {
			return nil, fmt.Errorf("config read '%s': %w", v.ConfigFileUsed(), err)
		}
	}

	if fs != nil {
		for key, flag := range map[string]string{
			"host":                "host",
			"port":                "port",
			"cpu_sample_interval": "cpu-interval",
			"disk_path":           "disk-path",
			"env_var":             "env-var",
			"log_level":           "log-level",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := &Config{
		Path: v.ConfigFileUsed(),
		Http: HttpConfig{
			Host:         v.GetString("host"),
			Port:         v.GetInt("port"),
			ReadTimeout:  v.GetDuration("read_timeout"),
			WriteTimeout: v.GetDuration("write_timeout"),
			IdleTimeout:  v.GetDuration("idle_timeout"),
		},
		CPUSampleInterval: v.GetDuration("cpu_sample_interval"),
		DiskPath:          v.GetString("disk_path"),
		EnvVar:            v.GetString("env_var"),
		LogLevel:          v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", DefaultHost)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("cpu_sample_interval", DefaultCPUInterval)
	v.SetDefault("disk_path", DefaultDiskPath)
	v.SetDefault("env_var", DefaultEnvVar)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("read_timeout", DefaultReadTimeout)
	v.SetDefault("write_timeout", DefaultWriteTimeout)
	v.SetDefault("idle_timeout", DefaultIdleTimeout)
}
