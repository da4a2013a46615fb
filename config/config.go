package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"delivrya/models"

	"github.com/glebarez/sqlite"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens, replaced by Load when configured
var JWTSecret = []byte("delivrya_super_secret_2024")

// TokenTTL is how long a login token stays valid
var TokenTTL = 24 * time.Hour

type Server struct {
	Port      string `yaml:"port" env:"PORT" env-default:"8082"`
	GinMode   string `yaml:"gin_mode" env:"GIN_MODE" env-default:"debug"`
	PublicURL string `yaml:"public_url" env:"PUBLIC_URL" env-default:"http://localhost:8082"`
}

type Database struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"` // sqlite or postgres
	DSN    string `yaml:"dsn" env:"DB_DSN" env-default:"delivrya.db"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"delivrya_super_secret_2024"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	BaseURL   string        `yaml:"base_url" env:"AUTH_BASE_URL" env-default:"http://localhost:8082"`
	Timeout   time.Duration `yaml:"timeout" env:"AUTH_TIMEOUT" env-default:"10s"`
}

type Pricing struct {
	DeliveryFee string `yaml:"delivery_fee" env:"DELIVERY_FEE" env-default:"20"`
	Currency    string `yaml:"currency" env:"CURRENCY" env-default:"DH"`
}

type Tracking struct {
	PreparingDelay time.Duration `yaml:"preparing_delay" env:"TRACKING_PREPARING_DELAY" env-default:"10s"`
	OnTheWayDelay  time.Duration `yaml:"on_the_way_delay" env:"TRACKING_ON_THE_WAY_DELAY" env-default:"20s"`
	Retention      time.Duration `yaml:"retention" env:"TRACKING_RETENTION" env-default:"1h"` // how long finished orders stay readable
}

type TokenStore struct {
	Driver    string `yaml:"driver" env:"TOKEN_STORE" env-default:"sql"` // memory, sql or redis
	DSN       string `yaml:"dsn" env:"TOKEN_STORE_DSN" env-default:"delivrya_device.db"`
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"order-status"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	Auth       Auth       `yaml:"auth"`
	Pricing    Pricing    `yaml:"pricing"`
	Tracking   Tracking   `yaml:"tracking"`
	TokenStore TokenStore `yaml:"token_store"`
	Kafka      Kafka      `yaml:"kafka"`
	Log        Log        `yaml:"log"`
}

// Load reads the yaml file at path when it exists, then applies environment
// overrides and defaults
func Load(path string) (Config, error) {
	var cfg Config
	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	JWTSecret = []byte(cfg.Auth.JWTSecret)
	TokenTTL = cfg.Auth.TokenTTL
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := decimal.NewFromString(c.Pricing.DeliveryFee); err != nil {
		return fmt.Errorf("pricing.delivery_fee %q: %w", c.Pricing.DeliveryFee, err)
	}
	if c.DeliveryFee().IsNegative() {
		return errors.New("pricing.delivery_fee must not be negative")
	}
	if c.Tracking.PreparingDelay <= 0 || c.Tracking.OnTheWayDelay <= 0 {
		return errors.New("tracking delays must be > 0")
	}
	if c.Tracking.Retention <= 0 {
		return errors.New("tracking.retention must be > 0")
	}
	if strings.TrimSpace(c.Pricing.Currency) == "" {
		return errors.New("pricing.currency must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be > 0")
	}
	if c.Auth.Timeout <= 0 {
		return errors.New("auth.timeout must be > 0")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	switch c.TokenStore.Driver {
	case "memory", "sql", "redis":
	default:
		return fmt.Errorf("unknown token store %q", c.TokenStore.Driver)
	}
	return nil
}

// DeliveryFee is the flat per-order fee; Validate has already checked it parses
func (c Config) DeliveryFee() decimal.Decimal {
	fee, _ := decimal.NewFromString(c.Pricing.DeliveryFee)
	return fee
}

// OpenDB opens a gorm connection for the given driver
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" && dsn == ":memory:" {
		// every pooled connection would get its own empty in-memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// InitDB connects the shared DB and migrates the account tables
func InitDB(cfg Database) error {
	db, err := OpenDB(cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Client{}); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	DB = db
	return nil
}
