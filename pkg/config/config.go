package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverFirestore = "firestore"
	StoreDriverMemory    = "memory"

	MultiVendorReject   = "reject"
	MultiVendorSplit    = "split"
	MultiVendorCollapse = "collapse"

	defaultJWTSecret     = "your-secret-key"
	defaultAdminPassword = "admin"
)

type Config struct {
	ServerPort  string `envconfig:"SERVER_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`

	StoreDriver                string `envconfig:"STORE_DRIVER" default:"firestore"`
	FirebaseProject            string `envconfig:"FIREBASE_PROJECT_ID"`
	FirebaseServiceAccountJSON string `envconfig:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	FirebaseServiceAccountPath string `envconfig:"FIREBASE_SERVICE_ACCOUNT_PATH"`
	StoreRetryAttempts         uint64 `envconfig:"STORE_RETRY_ATTEMPTS" default:"3"`

	JWTSecret     string `envconfig:"JWT_SECRET" default:"your-secret-key"`
	JWTExpiry     int64  `envconfig:"JWT_EXPIRY" default:"86400"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin"`

	// Checkout behaviour
	MultiVendorPolicy   string `envconfig:"CHECKOUT_MULTI_VENDOR" default:"reject"`
	DecrementStock      bool   `envconfig:"CHECKOUT_DECREMENT_STOCK" default:"false"`
	DefaultPaymentLabel string `envconfig:"CHECKOUT_DEFAULT_PAYMENT" default:"Cash on Delivery"`

	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

func Load() (*Config, error) {
	// .env is optional; real environment always wins
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreDriverFirestore:
		if c.FirebaseProject == "" {
			return fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore store driver")
		}
		// shared stores never run on the built-in credentials
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set for the firestore store driver")
		}
		if c.AdminPassword == defaultAdminPassword {
			return fmt.Errorf("ADMIN_PASSWORD must be set for the firestore store driver")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	c.MultiVendorPolicy = strings.ToLower(strings.TrimSpace(c.MultiVendorPolicy))
	switch c.MultiVendorPolicy {
	case MultiVendorReject, MultiVendorSplit, MultiVendorCollapse:
	default:
		return fmt.Errorf("unknown CHECKOUT_MULTI_VENDOR %q", c.MultiVendorPolicy)
	}

	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}
