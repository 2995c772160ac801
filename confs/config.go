package confs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Settings is the runtime configuration read from the environment.
type Settings struct {
	Port    string `validate:"required,numeric"`
	GinMode string `validate:"omitempty,oneof=debug release test"`

	DBDriver   string `validate:"required,oneof=postgres sqlite"`
	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret      string `validate:"required,min=16"`
	JWTExpiryHours int    `validate:"min=1,max=720"`

	RedisAddr     string
	RedisPassword string
	RedisDB       int `validate:"min=0,max=15"`

	GeoIPURL       string `validate:"required,url"`
	GeoReverseURL  string `validate:"required,url"`
	GeoTimeout     time.Duration
	GeoCacheTTL    time.Duration
	ZonesFile      string
	StorageDir     string `validate:"required"`
	PublicBaseURL  string `validate:"omitempty,url"`
	KeepAliveEvery time.Duration

	LogLevel      string `validate:"omitempty,oneof=debug info warn warning error"`
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
}

// LoadConfig loads environment variables from a .env file if present
// and validates essential settings when needed.
func LoadConfig() (*Settings, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("warning: could not load .env: %v", err)
		}
	}

	s := FromEnv()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromEnv reads settings from the process environment, applying defaults.
func FromEnv() *Settings {
	return &Settings{
		Port:    getEnv("PORT", "3536"),
		GinMode: os.Getenv("GIN_MODE"),

		DBDriver:   getEnv("DB_DRIVER", DBDriverPostgres),
		DBURL:      os.Getenv("DB_URL"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		SQLitePath: getEnv("SQLITE_PATH", "portal.db"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		GeoIPURL:       getEnv("GEO_IP_URL", "https://ipapi.co"),
		GeoReverseURL:  getEnv("GEO_REVERSE_URL", "https://api.bigdatacloud.net/data/reverse-geocode-client"),
		GeoTimeout:     time.Duration(getEnvInt("GEO_TIMEOUT_SECONDS", 10)) * time.Second,
		GeoCacheTTL:    time.Duration(getEnvInt("GEO_CACHE_TTL_MINUTES", 5)) * time.Minute,
		ZonesFile:      os.Getenv("ZONES_FILE"),
		StorageDir:     getEnv("STORAGE_DIR", "./uploads"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		KeepAliveEvery: time.Duration(getEnvInt("KEEPALIVE_INTERVAL_MINUTES", 10)) * time.Minute,

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       os.Getenv("LOG_FILE"),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 28),
	}
}

// Validate checks struct constraints and the database combination.
func (s *Settings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for Settings: %w", err)
	}

	if s.DBDriver == DBDriverPostgres && s.DBURL == "" {
		if s.DBHost == "" || s.DBPort == "" || s.DBUser == "" || s.DBPassword == "" || s.DBName == "" {
			return fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
		}
	}
	if s.DBDriver == DBDriverSQLite && s.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
	}
	return nil
}

// JWTExpiry returns the session token lifetime.
func (s *Settings) JWTExpiry() time.Duration {
	return time.Duration(s.JWTExpiryHours) * time.Hour
}

// Addr is the listen address of the HTTP server.
func (s *Settings) Addr() string {
	return "0.0.0.0:" + s.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("warning: %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}
