package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	DBDriver   string
	DBLogLevel string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string
	SQLitePath  string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	JWTSecret string

	LoanPeriodDays  int
	FinePenaltyRate decimal.Decimal
	FineDueDays     int
	SweepInterval   time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads an optional .env file, then the process environment (which wins).
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		DBDriver:   getenv("DB_DRIVER", "mysql"),
		DBLogLevel: getenv("DB_LOG_LEVEL", "warn"),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "library"),
		MySQLUser:  getenv("MYSQL_USER", "library"),
		MySQLPass:  getenv("MYSQL_PASS", "library"),

		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		SQLitePath:  getenv("SQLITE_PATH", "library.sqlite3"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		JWTSecret: os.Getenv("JWT_SECRET"),

		LoanPeriodDays:  getint("LOAN_PERIOD_DAYS", 14),
		FinePenaltyRate: decimal.NewFromInt(1),
		FineDueDays:     getint("FINE_DUE_DAYS", 30),
	}
	if v := os.Getenv("FINE_PENALTY_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			c.FinePenaltyRate = d
		}
	}
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.SweepInterval = d
		}
	}
	return c
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql, postgres, sqlite)", c.DBDriver)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.LoanPeriodDays <= 0 {
		return fmt.Errorf("LOAN_PERIOD_DAYS must be positive, got %d", c.LoanPeriodDays)
	}
	if c.FineDueDays <= 0 {
		return fmt.Errorf("FINE_DUE_DAYS must be positive, got %d", c.FineDueDays)
	}
	if c.FinePenaltyRate.IsNegative() {
		return fmt.Errorf("FINE_PENALTY_RATE must not be negative, got %s", c.FinePenaltyRate)
	}
	if c.SweepInterval < 0 {
		return errors.New("SWEEP_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps due-date comparisons in one zone
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresDSN
	case "sqlite":
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) LoanPeriod() time.Duration { return time.Duration(c.LoanPeriodDays) * 24 * time.Hour }

func (c *Config) FineDueAfter() time.Duration { return time.Duration(c.FineDueDays) * 24 * time.Hour }

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }
