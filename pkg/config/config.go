package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultCleanTalkServerURL = "https://moderate.cleantalk.org"
	DefaultCleanTalkTimeout   = 5 * time.Second
	DefaultPlatform           = "prestashop"
)

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CleanTalk CleanTalkConfig `mapstructure:"cleantalk"`
	BlockPage BlockPageConfig `mapstructure:"block_page"`
	Antispam  AntispamConfig  `mapstructure:"antispam"`
}

type ServerConfig struct {
	AdminPort      int    `mapstructure:"admin_port"`
	StorefrontPort int    `mapstructure:"storefront_port"`
	MetricsPort    int    `mapstructure:"metrics_port"`
	Type           string `mapstructure:"type"`
	SecretKey      string `mapstructure:"secret_key"`
	// ProxyHeader names the header fiber trusts for the client IP, e.g. X-Forwarded-For.
	ProxyHeader string `mapstructure:"proxy_header"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

// CleanTalkConfig configures the outbound verdict call.
type CleanTalkConfig struct {
	ServerURL          string        `mapstructure:"server_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	Platform           string        `mapstructure:"platform"`
	AcceptEncoding     string        `mapstructure:"accept_encoding"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
	MaxConnsPerHost    int           `mapstructure:"max_conns_per_host"`
}

type BlockPageConfig struct {
	TemplatePath string `mapstructure:"template_path"`
}

type AntispamConfig struct {
	// FailOpenOnUnavailable lets submissions through when the verdict service cannot be reached.
	FailOpenOnUnavailable bool `mapstructure:"fail_open_on_unavailable"`
}

var globalConfig Config

// ErrConfigFileNotFound is returned alongside a usable configuration built
// from defaults and environment variables.
var ErrConfigFileNotFound = errors.New("config file not found, using defaults and environment variables")

func Load(configPath string) error {
	viper.Reset()
	globalConfig = Config{}
	setViperDefaults()
	err := loadConfigFile(configPath, "config", &globalConfig)
	if err != nil && !errors.Is(err, ErrConfigFileNotFound) {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues(&globalConfig)
	return err
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var readErr error
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
		readErr = fmt.Errorf("%s.yaml: %w", fileName, ErrConfigFileNotFound)
	}

	// Defaults and environment variables apply with or without a file.
	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return readErr
}

func setViperDefaults() {
	viper.SetDefault("server.admin_port", 8080)
	viper.SetDefault("server.storefront_port", 8081)
	viper.SetDefault("server.metrics_port", 9090)
	viper.SetDefault("metrics.enable_latency", true)
	viper.SetDefault("cleantalk.server_url", DefaultCleanTalkServerURL)
	viper.SetDefault("cleantalk.timeout", DefaultCleanTalkTimeout)
	viper.SetDefault("cleantalk.platform", DefaultPlatform)
	viper.SetDefault("cleantalk.accept_encoding", "gzip, br")
	viper.SetDefault("cleantalk.breaker_timeout", 30*time.Second)
	viper.SetDefault("cleantalk.breaker_max_failures", 5)
	viper.SetDefault("cleantalk.max_conns_per_host", 64)
	viper.SetDefault("antispam.fail_open_on_unavailable", true)
}

func setDefaultValues(cfg *Config) {
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.CleanTalk.ServerURL == "" {
		cfg.CleanTalk.ServerURL = DefaultCleanTalkServerURL
	}
	if cfg.CleanTalk.Timeout <= 0 {
		cfg.CleanTalk.Timeout = DefaultCleanTalkTimeout
	}
	if cfg.CleanTalk.Platform == "" {
		cfg.CleanTalk.Platform = DefaultPlatform
	}
}

func GetConfig() *Config {
	return &globalConfig
}
