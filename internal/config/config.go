package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Host         string
	Port         string
	DatabaseURI  string
	DatabaseName string
	RedisAddr    string
	FolderPath   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbName := getEnv("DB_DATABASE", "files_manager")

	return &Config{
		Host:         getEnv("HOST", "0.0.0.0"),
		Port:         getEnv("PORT", "5000"),
		DatabaseURI:  getDatabaseURI(dbName),
		DatabaseName: dbName,
		RedisAddr:    getRedisAddr(),
		FolderPath:   getEnv("FOLDER_PATH", "/tmp/files_manager"),
	}
}

func getDatabaseURI(dbName string) string {
	if uri := os.Getenv("DATABASE_URI"); uri != "" {
		return uri
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "27017")

	return fmt.Sprintf("mongodb://%s:%s/%s", host, port, dbName)
}

func getRedisAddr() string {
	host := getEnv("REDIS_HOST", "localhost")
	port := getEnv("REDIS_PORT", "6379")
	return fmt.Sprintf("%s:%s", host, port)
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
