package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Admin      AdminConfig      `yaml:"admin"`
	Payment    PaymentConfig    `yaml:"payment"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Menu       MenuConfig       `yaml:"menu"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port                 int `yaml:"port"`
	ReadHeaderTimeoutSec int `yaml:"read_header_timeout_sec"`
	WriteTimeoutSec      int `yaml:"write_timeout_sec"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type AdminConfig struct {
	Password string `yaml:"password"`
}

// PaymentConfig describes the templated payment link handed to customers:
// <base_url>/<amount>?h=<hash>.
type PaymentConfig struct {
	BaseURL string `yaml:"base_url"`
	Hash    string `yaml:"hash"`
}

// PricingConfig holds the per-guest deposit tiers and the service tip rate.
type PricingConfig struct {
	ThreeCourseDeposit float64 `yaml:"three_course_deposit"`
	TwoCourseDeposit   float64 `yaml:"two_course_deposit"`
	TipRate            float64 `yaml:"tip_rate"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type MenuConfig struct {
	SeedPath string `yaml:"seed_path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment may already be populated.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Expand ${VAR} references before parsing so secrets stay out of the file.
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Admin.Password == "" || c.Admin.Password == "CHANGE_ME" {
		return errors.New("admin password is required")
	}

	if c.Pricing.TipRate < 0 || c.Pricing.TipRate >= 1 {
		return fmt.Errorf("tip rate %v out of range", c.Pricing.TipRate)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeoutSec == 0 {
		c.Server.ReadHeaderTimeoutSec = 5
	}
	if c.Server.WriteTimeoutSec == 0 {
		c.Server.WriteTimeoutSec = 15
	}

	if c.Pricing.ThreeCourseDeposit == 0 {
		c.Pricing.ThreeCourseDeposit = 10.00
	}
	if c.Pricing.TwoCourseDeposit == 0 {
		c.Pricing.TwoCourseDeposit = 5.00
	}
	if c.Pricing.TipRate == 0 {
		c.Pricing.TipRate = 0.10
	}

	if c.Payment.BaseURL == "" {
		c.Payment.BaseURL = "https://monzo.me/davidburke45"
	}
	if c.Payment.Hash == "" {
		c.Payment.Hash = "UFLFPl"
	}

	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}

	if c.Menu.SeedPath == "" {
		c.Menu.SeedPath = "configs/menu.yaml"
	}
}
