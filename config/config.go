package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "change-me-in-production"

type Config struct {
	Env           string
	Port          string
	MongoURI      string
	DBName        string
	JWTSecret     string
	ClientOrigins []string
	StripeKey     string
	RedisAddr     string // empty disables the user cache
	RedisPassword string
	UserCacheTTL  time.Duration
	S3Bucket      string
	S3Region      string
	S3AccessKeyID string
	S3SecretKey   string
	MaxUploadMB   int64
	SMTPHost      string // empty disables payment receipts
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailFrom      string
}

func Load() (*Config, error) {
	cacheTTL, err := getDuration("USER_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	maxMB, err := getInt("MAX_UPLOAD_MB", 5)
	if err != nil {
		return nil, err
	}
	smtpPort, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	var redisAddr string
	if host := getEnv("REDIS_HOST", ""); host != "" {
		redisAddr = fmt.Sprintf("%s:%s", host, getEnv("REDIS_PORT", "6379"))
	}

	smtpUser := getEnv("SMTP_USERNAME", "")
	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "5000"),
		MongoURI:      mongoURI(),
		DBName:        getEnv("MONGODB_DB", "theDailyPulseNews"),
		JWTSecret:     getEnv("JWT_SECRET", getEnv("SECRET", defaultJWTSecret)),
		ClientOrigins: splitList(getEnv("CLIENT_ORIGIN", "http://localhost:5173")),
		StripeKey:     getEnv("STRIPE_SECRET_KEY", ""),
		RedisAddr:     redisAddr,
		RedisPassword: getEnv("REDIS_PASSWD", ""),
		UserCacheTTL:  cacheTTL,
		S3Bucket:      getEnv("AWS_S3_BUCKET", ""),
		S3Region:      getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:   int64(maxMB),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      smtpPort,
		SMTPUsername:  smtpUser,
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		MailFrom:      getEnv("MAIL_FROM", smtpUser),
	}, nil
}

// Production reports whether APP_ENV=production.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Validate rejects settings the server must not start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Production() && c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be set to a strong secret in production"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is empty"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	if c.SMTPHost != "" && c.MailFrom == "" {
		errs = append(errs, errors.New("MAIL_FROM or SMTP_USERNAME is required when SMTP_HOST is set"))
	}
	return errors.Join(errs...)
}

// mongoURI prefers MONGODB_URI; otherwise DB_USER/DB_PASS build an Atlas
// SRV connection string against DB_HOST.
func mongoURI() string {
	if uri := getEnv("MONGODB_URI", ""); uri != "" {
		return uri
	}
	user, pass := getEnv("DB_USER", ""), getEnv("DB_PASS", "")
	host := getEnv("DB_HOST", "")
	if user == "" || pass == "" || host == "" {
		return "mongodb://localhost:27017"
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), host)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
