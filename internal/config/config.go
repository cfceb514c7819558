// Package config loads service configuration from defaults, an optional
// YAML file, and environment variables.
package config

import "fmt"

// Config holds all configuration for the backend service.
type Config struct {
	// ServiceName is reported by the index endpoint and attached to logs.
	ServiceName string `koanf:"service_name"`

	// Database connection settings.
	DBHost     string `koanf:"db_host"`
	DBPort     int    `koanf:"db_port"`
	DBName     string `koanf:"db_name"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`

	// HTTPPort is the port the JSON API listens on, all interfaces.
	HTTPPort string `koanf:"http_port"`

	// GRPCHealthPort serves the grpc.health.v1 probe.
	GRPCHealthPort string `koanf:"grpc_health_port"`

	// RabbitMQURL enables event publishing when non-empty.
	RabbitMQURL string `koanf:"rabbitmq_url"`

	LogLevel string `koanf:"log_level"`
}

func defaults() *Config {
	return &Config{
		ServiceName:    "backend",
		DBHost:         "db",
		DBPort:         5432,
		DBName:         "mydb",
		DBUser:         "myuser",
		DBPassword:     "mypassword",
		HTTPPort:       "5000",
		GRPCHealthPort: "50051",
		LogLevel:       "info",
	}
}

// DSN builds the PostgreSQL connection string. The connect timeout is fixed
// at five seconds; the retry policy around it lives with the caller.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable connect_timeout=5",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
