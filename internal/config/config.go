package config

import (
	"os"
)

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	RedisHost      string
	RedisPort      string
	SessionSecret  string
	GinMode        string
	OpenAIAPIKey   string
	ArticleFeedURL string
	DataDir        string
}

func Load() *Config {
	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "planner"),
		DBPassword:     getEnv("DB_PASSWORD", "plannerpassword"),
		DBName:         getEnv("DB_NAME", "daily_planner"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		ArticleFeedURL: getEnv("ARTICLE_FEED_URL", "https://dev.to/api"),
		DataDir:        getEnv("DATA_DIR", "./data"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
