package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port                string `yaml:"port"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	} `yaml:"server"`

	Cart struct {
		Dir string `yaml:"dir"`
	} `yaml:"cart"`

	Orders struct {
		NumberPrefix string `yaml:"number_prefix"`
	} `yaml:"orders"`

	GenAI struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		APIKey         string `yaml:"-"`
	} `yaml:"genai"`

	Kafka struct {
		Brokers        []string `yaml:"brokers"`
		Topic          string   `yaml:"topic"`
		Console        bool     `yaml:"console"`
		PollIntervalMS int      `yaml:"poll_interval_ms"`
	} `yaml:"kafka"`

	Moderation struct {
		Blocklist []string `yaml:"blocklist"`
	} `yaml:"moderation"`

	Debug bool `yaml:"debug"`
}

// Load reads the YAML config and layers .env / process env on top for
// secrets and connection strings that should not live in the file.
func Load(path string) (*Config, error) {
	loadEnv()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.GenAI.APIKey = os.Getenv("GENAI_API_KEY")
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	return cfg, nil
}

func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "9000"
	cfg.Server.ReadTimeoutSeconds = 10
	cfg.Server.WriteTimeoutSeconds = 10
	cfg.Cart.Dir = "data/carts"
	cfg.Orders.NumberPrefix = "CARD"
	cfg.GenAI.TimeoutSeconds = 30
	cfg.Kafka.Brokers = []string{"localhost:9092"}
	cfg.Kafka.Topic = "order_events"
	cfg.Kafka.Console = true
	cfg.Kafka.PollIntervalMS = 2000
	return cfg
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutSeconds) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutSeconds) * time.Second
}

func (c *Config) GenAITimeout() time.Duration {
	return time.Duration(c.GenAI.TimeoutSeconds) * time.Second
}

func (c *Config) KafkaPollInterval() time.Duration {
	return time.Duration(c.Kafka.PollIntervalMS) * time.Millisecond
}

// DatabaseDSN is assembled from env only; an empty host means "run without
// postgres" and the caller falls back to the in-memory storage.
func DatabaseDSN() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		os.Getenv("DB_PORT"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
	)
}

func loadEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	possiblePaths := []string{
		filepath.Join(wd, ".env"),
		filepath.Join(wd, "..", ".env"),
		filepath.Join(wd, "..", "..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			return
		}
	}
}
