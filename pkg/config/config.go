package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                    string
	Env                     string
	MySQLDSN                string
	RedisAddr               string
	RedisPassword           string
	FirebaseCredentialsPath string
	JWTSecret               string
	AnonymousUserEmail      string
	ReactionUnique          bool
	NotificationWindowDays  int
	OpenAIAPIKey            string
	OpenAIModel             string
	S3Bucket                string
	AWSRegion               string
	SMTPHost                string
	SMTPPort                int
	SMTPUser                string
	SMTPPassword            string
	MailFrom                string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		MySQLDSN:                getEnv("MYSQL_DSN", ""),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		AnonymousUserEmail:      getEnv("ANONYMOUS_USER_EMAIL", "anonymous@carena.app"),
		ReactionUnique:          getEnvBool("REACTION_UNIQUE", true),
		NotificationWindowDays:  getEnvInt("NOTIFICATION_WINDOW_DAYS", 30),
		OpenAIAPIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:             getEnv("OPENAI_MODEL", "gpt-4o"),
		S3Bucket:                getEnv("S3_BUCKET_NAME", ""),
		AWSRegion:               getEnv("AWS_REGION", "ap-northeast-2"),
		SMTPHost:                getEnv("SMTP_HOST", "localhost"),
		SMTPPort:                getEnvInt("SMTP_PORT", 587),
		SMTPUser:                getEnv("SMTP_USER", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		MailFrom:                getEnv("MAIL_FROM", "no-reply@carena.app"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
