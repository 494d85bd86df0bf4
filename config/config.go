package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// AppConfig is the global configuration instance.
var AppConfig *Config

// Config is the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         string        `yaml:"port" env:"SERVER_PORT" default:"8801"`
	Mode         string        `yaml:"mode" env:"GIN_MODE" default:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
}

// DataConfig locates the materialized dataset consumed by the table adapter.
type DataConfig struct {
	Dir string `yaml:"dir" env:"DATA_DIR" default:"data/default"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Output string `yaml:"output" default:"stdout"` // stdout, file, both
	Dir    string `yaml:"dir" default:"logs"`
}

// InitConfig loads configuration: defaults, then the yaml file, then
// environment variables, then validates the result.
func InitConfig() error {
	if err := loadEnv(); err != nil {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	config := &Config{}
	setDefaults(config)

	if err := loadFromFile(config); err != nil {
		log.Printf("Warning: failed to load config file: %v", err)
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	AppConfig = config
	return nil
}

func loadEnv() error {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFiles := []string{
		".env",
		fmt.Sprintf(".env.%s", env),
		".env.local",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				return err
			}
		}
	}

	return nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8801"
	config.Server.Mode = "debug"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Data.Dir = "data/default"

	config.Log.Level = "info"
	config.Log.Output = "stdout"
	config.Log.Dir = "logs"
}

func loadFromFile(config *Config) error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

func loadFromEnv(config *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		config.Data.Dir = dir
	}
}

func validateConfig(config *Config) error {
	if config.Data.Dir == "" {
		return fmt.Errorf("data directory is required")
	}

	if _, err := strconv.Atoi(strings.TrimPrefix(config.Server.Port, ":")); err != nil {
		return fmt.Errorf("invalid server port: %s", config.Server.Port)
	}

	validModes := []string{"debug", "release", "test"}
	modeValid := false
	for _, mode := range validModes {
		if config.Server.Mode == mode {
			modeValid = true
			break
		}
	}
	if !modeValid {
		return fmt.Errorf("invalid server mode: %s", config.Server.Mode)
	}

	return nil
}

// GetConfig returns the configuration; InitConfig must run first.
func GetConfig() *Config {
	if AppConfig == nil {
		log.Fatal("config not initialized, call InitConfig() first")
	}
	return AppConfig
}

// IsProduction reports whether the server runs in release mode.
func IsProduction() bool {
	return AppConfig != nil && AppConfig.Server.Mode == "release"
}
