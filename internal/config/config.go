package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath используется, если переменная окружения CONFIG_PATH не задана
const DefaultPath = "config/config.yaml"

// Config определяет структуру конфигурации всего приложения целиком
type Config struct {
	HTTPServer `yaml:"http_server"`
	Kafka      `yaml:"kafka"`
	Logger     `yaml:"logger"`
	Metrics    `yaml:"metrics"`
}

// HTTPServer содержит конфигурацию для HTTP-сервера
type HTTPServer struct {
	Port        string        `yaml:"port"`
	Timeout     time.Duration `yaml:"timeout"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	// ShutdownTimeout — сколько ждём завершения активных запросов при остановке
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// RateLimit — запросов в минуту с одного IP, 0 отключает ограничение
	RateLimit int `yaml:"rate_limit"`
}

// Kafka содержит конфигурацию для подключения к кафке
type Kafka struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

// Logger содержит конфигурацию для логгера
type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics содержит конфигурацию эндпоинта prometheus
type Metrics struct {
	Path string `yaml:"path"`
}

// Path возвращает путь к файлу конфигурации из CONFIG_PATH или путь по умолчанию
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Load читает конфигурацию из файла и дополняет её значениями по умолчанию
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if configPath == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
		}
		return nil, fmt.Errorf("%s: failed to read config file: %w", op, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to unmarshal config: %w", op, err)
	}

	cfg.setDefaults()

	if cfg.Kafka.Enabled && (len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "") {
		return nil, fmt.Errorf("%s: kafka is enabled but brokers or topic are not set", op)
	}

	return &cfg, nil
}

// MustLoad загружает конфигурацию из файла по указанному пути
// в случае ошибки программа завершается с фатальной ошибкой
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func (c *Config) setDefaults() {
	if c.HTTPServer.Port == "" {
		c.HTTPServer.Port = ":4600"
	}
	if c.HTTPServer.Timeout <= 0 {
		c.HTTPServer.Timeout = 5 * time.Second
	}
	if c.HTTPServer.IdleTimeout <= 0 {
		c.HTTPServer.IdleTimeout = 60 * time.Second
	}
	if c.HTTPServer.ShutdownTimeout <= 0 {
		c.HTTPServer.ShutdownTimeout = 5 * time.Second
	}
	if c.HTTPServer.RateLimit < 0 {
		c.HTTPServer.RateLimit = 0
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "bought-together-service"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "INFO"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "text"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}
