package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backend types
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreDynamoDB = "dynamodb"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Store       StoreConfig
}

// StoreConfig holds storage backend configuration
type StoreConfig struct {
	Type             string // "memory", "sqlite" or "dynamodb"
	TableName        string
	Region           string
	Endpoint         string // optional override for local DynamoDB emulators
	ConnectionString string // sqlite database path
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORE_TYPE", StoreMemory)
	viper.SetDefault("TABLE_NAME", "items")
	viper.SetDefault("DB_CONNECTION_STRING", "./data/items.db")

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Store: StoreConfig{
			Type:             viper.GetString("STORE_TYPE"),
			TableName:        viper.GetString("TABLE_NAME"),
			Region:           viper.GetString("AWS_REGION"),
			Endpoint:         viper.GetString("DYNAMODB_ENDPOINT"),
			ConnectionString: viper.GetString("DB_CONNECTION_STRING"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
