package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration. Values come from an optional
// YAML file, with environment variables taking precedence over both file
// values and built-in defaults.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Auth     AuthConfig     `yaml:"auth"`
	AMQP     AMQPConfig     `yaml:"amqp"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Reports  ReportsConfig  `yaml:"reports"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslmode"`
	SchemaPath string `yaml:"schema_path"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AuthConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

type AMQPConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// PricingConfig carries the money rules: tax rate, the loyalty redemption
// rule (points needed, points spent, dollar cap) and accrual.
type PricingConfig struct {
	TaxRate            float64 `yaml:"tax_rate"`
	LoyaltyThreshold   int     `yaml:"loyalty_threshold"`
	LoyaltyRedeemCost  int     `yaml:"loyalty_redeem_cost"`
	LoyaltyMaxDiscount float64 `yaml:"loyalty_max_discount"`
}

// CatalogConfig names the fixed catalog entries that customization depends
// on, so cup-size and scale ingredient ids never appear inline in pricing or
// composition code.
type CatalogConfig struct {
	CupSmallID          int64  `yaml:"cup_small_id"`
	CupMediumID         int64  `yaml:"cup_medium_id"`
	CupLargeID          int64  `yaml:"cup_large_id"`
	ScaleIngredientName string `yaml:"scale_ingredient_name"`
}

type ReportsConfig struct {
	LowStockThreshold int     `yaml:"low_stock_threshold"`
	CardFeeRate       float64 `yaml:"card_fee_rate"`
}

// Default returns the built-in configuration. The catalog ids default to the
// seed data shipped in migrations.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "teahouse_user",
			Password: "teahouse_password",
			Name:     "teahouse_db",
			SSLMode:  "disable",
		},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000", "http://localhost:3001"}},
		Auth: AuthConfig{TokenTTLHours: 12},
		AMQP: AMQPConfig{Host: "localhost", Port: 5672, User: "guest", Password: "guest"},
		Pricing: PricingConfig{
			TaxRate:            0.0825,
			LoyaltyThreshold:   50,
			LoyaltyRedeemCost:  50,
			LoyaltyMaxDiscount: 5.00,
		},
		Catalog: CatalogConfig{
			CupSmallID:          23,
			CupMediumID:         24,
			CupLargeID:          22,
			ScaleIngredientName: "Ice",
		},
		Reports: ReportsConfig{
			LowStockThreshold: 50,
			CardFeeRate:       0.02,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret (or JWT_SECRET) must be set")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Port, "PORT")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Database.SchemaPath, "DB_SCHEMA_PATH")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.AMQP.Host, "AMQP_HOST")
	setString(&c.AMQP.User, "AMQP_USER")
	setString(&c.AMQP.Password, "AMQP_PASSWORD")
	setInt(&c.AMQP.Port, "AMQP_PORT")
	setBool(&c.AMQP.Enabled, "AMQP_ENABLED")
	setFloat(&c.Pricing.TaxRate, "TAX_RATE")
	setInt(&c.Reports.LowStockThreshold, "LOW_STOCK_THRESHOLD")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
