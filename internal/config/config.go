package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST       string
	DbPORT       string
	DbUSER       string
	DbPASSWORD   string
	DbNAME       string
	DbSSLMODE    string
	DbMIGRATIONS string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Auth struct {
	JWTSecretKey          string
	AccessTokenDuration   time.Duration
	RecoveryTokenDuration time.Duration
	ConfirmEmail          bool
	SessionSecret         string
	SessionSecure         bool
	AdminEmail            string
}

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Relay describes the outbound email relay used by the contact form.
type Relay struct {
	Driver     string
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	Inbox      string
}

type Redis struct {
	Addr               string
	Password           string
	DB                 int
	RateLimitPerMinute int
	// TrustedProxies are the peer addresses whose X-Forwarded-For header is
	// believed when keying rate limits.
	TrustedProxies []string
}

type Log struct {
	Mode string
	File string
}

type Config struct {
	ServerPort         int
	BaseURL            string
	MaxUploadSize      int64
	ContactFunctionURL string
	DB                 DB
	MinIO              MinIO
	Auth               Auth
	SMTP               SMTP
	Relay              Relay
	Redis              Redis
	Log                Log
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:       getEnv("DB_HOST", "localhost"),
		DbPORT:       getEnv("DB_PORT", "5432"),
		DbUSER:       getEnv("DB_USER", "postgres"),
		DbPASSWORD:   getEnv("DB_PASSWORD", "password"),
		DbNAME:       getEnv("DB_NAME", "zurna"),
		DbSSLMODE:    getEnv("DB_SSLMODE", "disable"),
		DbMIGRATIONS: getEnv("DB_MIGRATIONS", "migrations/001_create_tables.sql"),
	}
}

func LoadMinIO() MinIO {
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "products"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  strings.TrimSuffix(getEnv("MINIO_PUBLIC_URL", scheme+endpoint), "/"),
	}
}

func LoadAuth() Auth {
	return Auth{
		JWTSecretKey:          getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:   parseDuration(getEnv("ACCESS_TOKEN_DURATION", "1h"), time.Hour),
		RecoveryTokenDuration: parseDuration(getEnv("RECOVERY_TOKEN_DURATION", "1h"), time.Hour),
		ConfirmEmail:          getEnvBool("AUTH_CONFIRM_EMAIL", true),
		SessionSecret:         getEnv("SESSION_SECRET", ""),
		SessionSecure:         getEnvBool("SESSION_SECURE", false),
		AdminEmail:            strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
	}
}

func LoadSMTP() SMTP {
	return SMTP{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     getEnvAsInt("SMTP_PORT", 587),
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "noreply@zurna-atolyesi.com"),
	}
}

func LoadRelay() Relay {
	return Relay{
		Driver:     getEnv("RELAY_DRIVER", "emailjs"),
		Endpoint:   getEnv("RELAY_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		ServiceID:  getEnv("RELAY_SERVICE_ID", ""),
		TemplateID: getEnv("RELAY_TEMPLATE_ID", ""),
		PublicKey:  getEnv("RELAY_PUBLIC_KEY", ""),
		Inbox:      getEnv("RELAY_INBOX", ""),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr:               getEnv("REDIS_ADDR", ""),
		Password:           getEnv("REDIS_PASSWORD", ""),
		DB:                 getEnvAsInt("REDIS_DB", 0),
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 5),
		TrustedProxies:     getEnvAsList("TRUSTED_PROXY"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	baseURL := strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:8080"), "/")

	return &Config{
		ServerPort:         getEnvAsInt("SERVER_PORT", 8080),
		BaseURL:            baseURL,
		MaxUploadSize:      parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		ContactFunctionURL: getEnv("CONTACT_FUNCTION_URL", baseURL+"/functions/v1/send-contact-email"),
		DB:                 LoadDB(),
		MinIO:              LoadMinIO(),
		Auth:               LoadAuth(),
		SMTP:               LoadSMTP(),
		Relay:              LoadRelay(),
		Redis:              LoadRedis(),
		Log: Log{
			Mode: getEnv("LOG_MODE", "development"),
			File: getEnv("LOG_FILE", ""),
		},
	}
}
