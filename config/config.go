package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Host           string
	Port           string
	Env            string
	AllowedOrigins string

	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBAutoMigrate bool

	JWTSecret string
	JWTExpiry time.Duration

	AdminUsername string
	AdminPassword string

	// grab rules
	GrabCooldown             time.Duration
	GrabFreezeThreshold      int
	SponsorCommissionPercent decimal.Decimal
	GrabCycleResetAfter      time.Duration
	CycleResetInterval       time.Duration

	AuthRateLimit float64
	AuthRateBurst int

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	CDNBaseURL  string

	TelegramBotToken    string
	TelegramAdminChatID int64
}

// Cfg is the process-wide configuration, set by Load.
var Cfg = Default()

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		Host:                     "127.0.0.1",
		Port:                     "3000",
		Env:                      "development",
		AllowedOrigins:           "*",
		DBDriver:                 "postgres",
		DBHost:                   "localhost",
		DBPort:                   "5432",
		DBUser:                   "postgres",
		DBName:                   "ordergrab",
		DBSSLMode:                "disable",
		JWTSecret:                "change-me",
		JWTExpiry:                24 * time.Hour,
		GrabCooldown:             time.Minute,
		GrabFreezeThreshold:      3,
		SponsorCommissionPercent: decimal.Zero,
		GrabCycleResetAfter:      24 * time.Hour,
		CycleResetInterval:       15 * time.Minute,
		AuthRateLimit:            1,
		AuthRateBurst:            10,
		S3Region:                 "auto",
	}
}

// Load reads the environment on top of Default and stores the result in Cfg.
func Load() *Config {
	d := Default()
	cfg := &Config{
		Host:           getEnv("HOST", d.Host),
		Port:           getEnv("PORT", d.Port),
		Env:            getEnv("APP_ENV", d.Env),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", d.AllowedOrigins),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", d.DBDriver)),
		DBHost:        getEnv("DB_HOST", d.DBHost),
		DBPort:        getEnv("DB_PORT", d.DBPort),
		DBUser:        getEnv("DB_USER", d.DBUser),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", d.DBName),
		DBSSLMode:     getEnv("DB_SSLMODE", d.DBSSLMode),
		DBAutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),

		JWTSecret: getEnv("JWT_SECRET", d.JWTSecret),
		JWTExpiry: getEnvAsDuration("JWT_EXPIRY", d.JWTExpiry),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		GrabCooldown:             getEnvAsDuration("GRAB_COOLDOWN", d.GrabCooldown),
		GrabFreezeThreshold:      getEnvAsInt("GRAB_FREEZE_THRESHOLD", d.GrabFreezeThreshold),
		SponsorCommissionPercent: getEnvAsDecimal("SPONSOR_COMMISSION_PERCENT", d.SponsorCommissionPercent),
		GrabCycleResetAfter:      getEnvAsDuration("GRAB_CYCLE_RESET_AFTER", d.GrabCycleResetAfter),
		CycleResetInterval:       getEnvAsDuration("CYCLE_RESET_INTERVAL", d.CycleResetInterval),

		AuthRateLimit: getEnvAsFloat("AUTH_RATE_LIMIT", d.AuthRateLimit),
		AuthRateBurst: getEnvAsInt("AUTH_RATE_BURST", d.AuthRateBurst),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", d.S3Region),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		CDNBaseURL:  strings.TrimRight(getEnv("CDN_BASE_URL", ""), "/"),

		TelegramBotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChatID: int64(getEnvAsInt("TELEGRAM_ADMIN_CHAT_ID", 0)),
	}

	Cfg = cfg
	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v, err := decimal.NewFromString(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
