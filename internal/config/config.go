package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type ClaimServiceConfig struct {
	Port         string
	LogDir       string
	PostgresCfg  PostgresConfig
	RabbitMQCfg  RabbitMQConfig
	RedisCfg     RedisConfig
	MinioCfg     MinioConfig
	GeminiAPICfg GeminiAPIConfig
	WorkerCfg    WorkerConfig
	FollowUpCfg  FollowUpConfig
	TemplateCfg  TemplateConfig
}

type MinioConfig struct {
	MinioURL         string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioLocation    string
	MinioSecure      string
	MinioResourceURL string
	PresignExpiry    time.Duration
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RabbitMQConfig struct {
	Host     string
	Username string
	Password string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type GeminiAPIConfig struct {
	APIKeys   []string
	FlashName string
}

type WorkerConfig struct {
	ReportWorkers   int
	ReportQueueSize int
}

type FollowUpConfig struct {
	Schedule   string
	AfterHours int
}

type TemplateConfig struct {
	CacheTTL time.Duration
}

func New() *ClaimServiceConfig {
	return &ClaimServiceConfig{
		Port:   getEnvOrDefault("PORT", "8086"),
		LogDir: getEnvOrDefault("LOG_DIR", "/nestory/log/claim_service"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "nestory_claims"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntEnvOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioURL:         getEnvOrDefault("MINIO_ENDPOINT", "localhost:9407"),
			MinioAccessKey:   getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey:   getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:    getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:      getEnvOrDefault("MINIO_SECURE", "false"),
			MinioResourceURL: getEnvOrDefault("MINIO_RESOURCE_URL", "http://localhost:9407/"),
			PresignExpiry:    getDurationEnvOrDefault("MINIO_PRESIGN_EXPIRY", 24*time.Hour),
		},
		GeminiAPICfg: GeminiAPIConfig{
			APIKeys:   splitList(getEnvOrDefault("GEMINI_KEYS", "")),
			FlashName: getEnvOrDefault("GEMINI_FLASH_MODEL", "gemini-2.5-flash"),
		},
		WorkerCfg: WorkerConfig{
			ReportWorkers:   getIntEnvOrDefault("REPORT_WORKERS", 4),
			ReportQueueSize: getIntEnvOrDefault("REPORT_QUEUE_SIZE", 100),
		},
		FollowUpCfg: FollowUpConfig{
			Schedule:   getEnvOrDefault("FOLLOWUP_CRON", "0 9 * * *"),
			AfterHours: getIntEnvOrDefault("FOLLOWUP_AFTER_HOURS", 48),
		},
		TemplateCfg: TemplateConfig{
			CacheTTL: getDurationEnvOrDefault("TEMPLATE_CACHE_TTL", 6*time.Hour),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
