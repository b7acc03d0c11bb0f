package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "HAMPER"

const (
	EnvAppEnv            = "HAMPER_APP_ENV"
	EnvLogLevel          = "HAMPER_LOG_LEVEL"
	EnvLogFormat         = "HAMPER_LOG_FORMAT"
	EnvBrandName         = "HAMPER_BRAND_NAME"
	EnvWhatsAppNumber    = "HAMPER_WHATSAPP_NUMBER"
	EnvWhatsAppBaseURL   = "HAMPER_WHATSAPP_BASE_URL"
	EnvSnapshotThreshold = "HAMPER_SNAPSHOT_THRESHOLD"
	EnvKafkaEnabled      = "HAMPER_KAFKA_ENABLED"
	EnvKafkaBrokers      = "HAMPER_KAFKA_BROKERS"
	EnvKafkaTopic        = "HAMPER_KAFKA_TOPIC"
)

var (
	ErrMissingWhatsAppNumber = errors.New("whatsapp number is required")
	ErrInvalidThreshold      = errors.New("snapshot threshold must be positive")
	ErrMissingBrokers        = errors.New("kafka brokers are required when eventing is enabled")
)

type Config struct {
	App      AppConfig
	Shop     ShopConfig
	WhatsApp WhatsAppConfig
	Store    StoreConfig
	Eventing EventingConfig
}

type AppConfig struct {
	Env       string `envconfig:"HAMPER_APP_ENV" default:"dev"`
	LogLevel  string `envconfig:"HAMPER_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"HAMPER_LOG_FORMAT"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

// Format returns the configured log format, or console in dev and json elsewhere.
func (a AppConfig) Format() string {
	if a.LogFormat != "" {
		return a.LogFormat
	}
	if a.IsDev() {
		return "console"
	}
	return "json"
}

type ShopConfig struct {
	BrandName string `envconfig:"HAMPER_BRAND_NAME" default:"HAPPY HAVEN"`
}

type WhatsAppConfig struct {
	Number  string `envconfig:"HAMPER_WHATSAPP_NUMBER" default:"918007191513"`
	BaseURL string `envconfig:"HAMPER_WHATSAPP_BASE_URL" default:"https://wa.me"`
}

type StoreConfig struct {
	SnapshotThreshold int `envconfig:"HAMPER_SNAPSHOT_THRESHOLD" default:"10"`
}

type EventingConfig struct {
	KafkaEnabled bool     `envconfig:"HAMPER_KAFKA_ENABLED" default:"false"`
	KafkaBrokers []string `envconfig:"HAMPER_KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string   `envconfig:"HAMPER_KAFKA_TOPIC" default:"hamper-session-events"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.WhatsApp.Number) == "" {
		return ErrMissingWhatsAppNumber
	}
	if c.Store.SnapshotThreshold <= 0 {
		return ErrInvalidThreshold
	}
	if c.Eventing.KafkaEnabled && len(c.Eventing.KafkaBrokers) == 0 {
		return ErrMissingBrokers
	}
	return nil
}
