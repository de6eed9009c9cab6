package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
	Device   DeviceConfig
	AWS      AWSConfig
}

// DatabaseConfig holds database configuration. An empty URL keeps run
// history in memory.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	File  string
	Level string
}

// DeviceConfig holds RouterOS API and scan settings
type DeviceConfig struct {
	Port         int
	TLS          bool
	Interface    string
	ScanDuration string
}

// AWSConfig holds AWS/S3 configuration for report archiving. An empty bucket
// disables archiving.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

var keys = []string{
	"DATABASE_URL",
	"PORT",
	"ENVIRONMENT",
	"ALLOWED_ORIGINS",
	"LOG_FILE",
	"LOG_LEVEL",
	"DEVICE_PORT",
	"DEVICE_TLS",
	"WIRELESS_INTERFACE",
	"SCAN_DURATION",
	"AWS_REGION",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"S3_BUCKET",
	"S3_ENDPOINT",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("LOG_FILE", "app.log")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEVICE_PORT", 8728)
	viper.SetDefault("DEVICE_TLS", false)
	viper.SetDefault("WIRELESS_INTERFACE", "0")
	viper.SetDefault("SCAN_DURATION", "4")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")

	// Environment variables override .env file values
	viper.AutomaticEnv()
	for _, k := range keys {
		viper.BindEnv(k)
	}

	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	// Read .env file (ignore error if file doesn't exist)
	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	var config Config
	config.Database.URL = viper.GetString("DATABASE_URL")
	config.Server.Port = viper.GetString("PORT")
	config.Server.Env = viper.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))
	config.Log.File = viper.GetString("LOG_FILE")
	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Device.Port = viper.GetInt("DEVICE_PORT")
	config.Device.TLS = viper.GetBool("DEVICE_TLS")
	config.Device.Interface = viper.GetString("WIRELESS_INTERFACE")
	config.Device.ScanDuration = viper.GetString("SCAN_DURATION")
	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")

	log.Debug().
		Str("environment", config.Server.Env).
		Bool("database", config.Database.URL != "").
		Bool("archive", config.AWS.S3Bucket != "").
		Int("device_port", config.Device.Port).
		Msg("Configuration loaded")

	return &config, nil
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
