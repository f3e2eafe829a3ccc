package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env           string              `mapstructure:"env"`
	Server        ServerConfig        `mapstructure:"server"`
	API           APIConfig           `mapstructure:"api"`
	Access        AccessConfig        `mapstructure:"access"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout_seconds"`
	WriteTimeout int      `mapstructure:"write_timeout_seconds"`
	IdleTimeout  int      `mapstructure:"idle_timeout_seconds"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// APIConfig points at the remote bookstore API the controllers talk to.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	PageSize       int    `mapstructure:"page_size"`
	ActivityLimit  int    `mapstructure:"activity_limit"`
}

// AccessConfig maps roles to the resources they may modify. An empty policy
// falls back to the built-in one.
type AccessConfig struct {
	Policy map[string][]string `mapstructure:"policy"`
}

type NotificationsConfig struct {
	Driver string      `mapstructure:"driver"`
	NATS   NATSConfig  `mapstructure:"nats"`
	Kafka  KafkaConfig `mapstructure:"kafka"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

const (
	DriverLog   = "log"
	DriverNATS  = "nats"
	DriverKafka = "kafka"
)

func Load() (*Config, error) {
	// Get environment from ENV, default to "local"
	env := os.Getenv("ENV")
	if env == "" {
		env = "local"
	}

	v := viper.New()
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	v.SetConfigType("yaml")
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath("/configs")   // Kubernetes mount
	v.AddConfigPath("./configs")  // IDE from root
	v.AddConfigPath("../configs") // IDE from cmd/

	setDefaults(v, env)

	// Config file is optional - continue with defaults and ENV variables
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("api.base_url", "API_BASE_URL")
	_ = v.BindEnv("api.token", "API_TOKEN")
	_ = v.BindEnv("notifications.driver", "NOTIFICATIONS_DRIVER")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("env", env)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.page_size", 20)
	v.SetDefault("api.activity_limit", 10)
	v.SetDefault("notifications.driver", DriverLog)
	v.SetDefault("notifications.nats.subject", "admin.notifications")
	v.SetDefault("notifications.kafka.topic", "admin.notifications")
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	switch c.Notifications.Driver {
	case DriverLog, DriverNATS, DriverKafka:
	default:
		return fmt.Errorf("unknown notifications driver %q", c.Notifications.Driver)
	}
	return nil
}
