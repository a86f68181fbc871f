package config

import (
	"fmt"
	"time"
)

// AppConfig is the HTTP service configuration.
// Title is reported in the health endpoint's service header.
// Port is the port number to listen on.
// MaxCount caps the number of values a single request may ask for.
// ReadTimeout and WriteTimeout bound request handling.
type AppConfig struct {
	Title        string        `koanf:"title" yaml:"title"`
	Port         int           `koanf:"port" yaml:"port"`
	MaxCount     int           `koanf:"maxCount" yaml:"maxCount"`
	ReadTimeout  time.Duration `koanf:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `koanf:"writeTimeout" yaml:"writeTimeout"`
}

// NewDefaultAppConfig creates the service configuration used when the config file does not set one.
func NewDefaultAppConfig() *AppConfig {
	return &AppConfig{
		Title:        "Schemock",
		Port:         2200,
		MaxCount:     1000,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Addr returns the listen address.
func (a *AppConfig) Addr() string {
	return fmt.Sprintf(":%d", a.Port)
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`
	Format string `koanf:"format" yaml:"format"`
}
