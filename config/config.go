package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Smtp       SmtpConfig
	Fee        FeeConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr string
	DB   int
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	RoomSecret    string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type SmtpConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// FeeConfig carries the settlement fee inputs. The platform fee rate stays a
// string so the exact decimal representation survives from the environment
// into the reward calculation.
type FeeConfig struct {
	TransferFeeInYen            int
	PlatformFeeRateInPercentage string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getenv("APP_PORT", "8099"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("MYSQL_DSN", "consulto:consulto@tcp(localhost:3306)/consulto?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		Redis: RedisConfig{
			Addr: getenv("REDIS_ADDR", "localhost:6379"),
			DB:   getenvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			RoomSecret:    getenv("JWT_ROOM_SECRET", "change-me-room"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        getenv("JWT_ISSUER", "consulto"),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getenv("CLOUDINARY_API_KEY", ""),
			APISecret: getenv("CLOUDINARY_API_SECRET", ""),
		},
		Smtp: SmtpConfig{
			Host:     getenv("SMTP_HOST", "localhost"),
			Port:     getenv("SMTP_PORT", "587"),
			Username: getenv("SMTP_USERNAME", ""),
			Password: getenv("SMTP_PASSWORD", ""),
			From:     getenv("SMTP_FROM", "admin@consulto.example.com"),
		},
		Fee: FeeConfig{
			// The 250-yen fallback only ever fires in tests; production sets
			// TRANSFER_FEE_IN_YEN explicitly.
			TransferFeeInYen:            getenvInt("TRANSFER_FEE_IN_YEN", 250),
			PlatformFeeRateInPercentage: getenv("PLATFORM_FEE_RATE_IN_PERCENTAGE", "50.0"),
		},
	}
}
