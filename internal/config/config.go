package config

import (
	"os"
	"strconv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// Auth configuration
type AuthConfig struct {
	Secret        string
	TokenTTLHours int
}

// Upload configuration for ticket attachments
type UploadConfig struct {
	Dir   string
	MaxMB int64
}

// Suggest configuration for the external checklist-suggestion service
type SuggestConfig struct {
	Endpoint   string
	TimeoutSec int
}

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Upload  UploadConfig
	Suggest SuggestConfig
}

// Default configuration values
const (
	DefaultServerPort        = "8080"
	DefaultServerHost        = ""
	DefaultMongoURI          = "mongodb://localhost:27017/taskboard"
	DefaultMongoDB           = "taskboard"
	DefaultTokenTTLHours     = 24
	DefaultUploadDir         = "/var/lib/taskboard/uploads"
	DefaultMaxUploadMB       = 10
	DefaultSuggestTimeoutSec = 20
)

// New returns a new Config with default values
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		Auth: AuthConfig{
			Secret:        getEnv("AUTH_SECRET", ""),
			TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", DefaultTokenTTLHours),
		},
		Upload: UploadConfig{
			Dir:   getEnv("UPLOAD_DIR", DefaultUploadDir),
			MaxMB: int64(getEnvInt("MAX_UPLOAD_MB", DefaultMaxUploadMB)),
		},
		Suggest: SuggestConfig{
			Endpoint:   getEnv("SUGGEST_ENDPOINT", ""),
			TimeoutSec: getEnvInt("SUGGEST_TIMEOUT_SEC", DefaultSuggestTimeoutSec),
		},
	}
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
