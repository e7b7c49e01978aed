package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (drafts + rate-limit counters)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Device tokens
	TokenSecret string
	TokenExpiry time.Duration

	// Entry content bounds
	ContentMinLen int
	ContentMaxLen int
	MaxTags       int
	MaxTagLen     int
	MaxImages     int

	// Comment bounds
	CommentMaxLen int

	// Reveal candidate pool size
	CandidatePoolSize int

	// Rate-limit windows (advisory, per device)
	WriteLimitMax      int
	WriteLimitWindow   time.Duration
	ReadLimitMax       int
	ReadLimitWindow    time.Duration
	CommentLimitMax    int
	CommentLimitWindow time.Duration

	// Draft slot expiry
	DraftTTL time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "confession_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       parseInt(getEnv("REDIS_DB", "0"), 0),

		TokenSecret: getEnv("TOKEN_SECRET", ""),
		TokenExpiry: parseDuration(getEnv("TOKEN_EXPIRY", "8760h"), 8760*time.Hour),

		ContentMinLen: parseInt(getEnv("CONTENT_MIN_LEN", "10"), 10),
		ContentMaxLen: parseInt(getEnv("CONTENT_MAX_LEN", "500"), 500),
		MaxTags:       parseInt(getEnv("MAX_TAGS", "5"), 5),
		MaxTagLen:     parseInt(getEnv("MAX_TAG_LEN", "20"), 20),
		MaxImages:     parseInt(getEnv("MAX_IMAGES", "3"), 3),

		CommentMaxLen: parseInt(getEnv("COMMENT_MAX_LEN", "200"), 200),

		CandidatePoolSize: parseInt(getEnv("CANDIDATE_POOL_SIZE", "50"), 50),

		WriteLimitMax:      parseInt(getEnv("WRITE_LIMIT_MAX", "10"), 10),
		WriteLimitWindow:   parseDuration(getEnv("WRITE_LIMIT_WINDOW", "24h"), 24*time.Hour),
		ReadLimitMax:       parseInt(getEnv("READ_LIMIT_MAX", "30"), 30),
		ReadLimitWindow:    parseDuration(getEnv("READ_LIMIT_WINDOW", "1m"), time.Minute),
		CommentLimitMax:    parseInt(getEnv("COMMENT_LIMIT_MAX", "20"), 20),
		CommentLimitWindow: parseDuration(getEnv("COMMENT_LIMIT_WINDOW", "1h"), time.Hour),

		DraftTTL: parseDuration(getEnv("DRAFT_TTL", "24h"), 24*time.Hour),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
