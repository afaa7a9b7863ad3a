package env

import (
	"errors"

	"slot_kiosk/internal/config"
)

type httpConfig struct {
	Addr    string   `env:"HTTP_ADDRESS" envDefault:"127.0.0.1:8080"`
	Origins []string `env:"HTTP_ALLOWED_ORIGINS" envSeparator:","`
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	cfg, err := parse[httpConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *httpConfig) Address() string          { return c.Addr }
func (c *httpConfig) AllowedOrigins() []string { return c.Origins }

type metricsConfig struct {
	On   bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Addr string `env:"METRICS_ADDRESS" envDefault:":9090"`
}

func NewMetricsConfig() (config.MetricsConfig, error) {
	cfg, err := parse[metricsConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *metricsConfig) Enabled() bool   { return c.On }
func (c *metricsConfig) Address() string { return c.Addr }

type redisConfig struct {
	Address  string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Pass     string `env:"REDIS_PASSWORD"`
	Database int    `env:"REDIS_DB" envDefault:"0"`
	HashKey  string `env:"REDIS_NV_KEY" envDefault:"kiosk:nv_blocks"`
}

func NewRedisConfig() (config.RedisConfig, error) {
	cfg, err := parse[redisConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *redisConfig) Addr() string     { return c.Address }
func (c *redisConfig) Password() string { return c.Pass }
func (c *redisConfig) DB() int          { return c.Database }
func (c *redisConfig) Key() string      { return c.HashKey }

type kafkaConfig struct {
	BrokerList []string `env:"KAFKA_BROKERS" envSeparator:","`
	TopicName  string   `env:"KAFKA_TOPIC" envDefault:"kiosk.events"`
}

func NewKafkaConfig() (config.KafkaConfig, error) {
	cfg, err := parse[kafkaConfig]()
	if err != nil {
		return nil, err
	}
	if len(cfg.BrokerList) > 0 && cfg.TopicName == "" {
		return nil, errors.New("kafka topic not set")
	}
	return &cfg, nil
}

func (c *kafkaConfig) Enabled() bool     { return len(c.BrokerList) > 0 }
func (c *kafkaConfig) Brokers() []string { return c.BrokerList }
func (c *kafkaConfig) Topic() string     { return c.TopicName }

type operatorConfig struct {
	Operator string `env:"OPERATOR_NAME" envDefault:"operator"`
	Hash     string `env:"OPERATOR_PASSWORD_HASH"`
}

// NewOperatorConfig - an empty hash leaves console login disabled
func NewOperatorConfig() (config.OperatorConfig, error) {
	cfg, err := parse[operatorConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *operatorConfig) Name() string         { return c.Operator }
func (c *operatorConfig) PasswordHash() string { return c.Hash }
