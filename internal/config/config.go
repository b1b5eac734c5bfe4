package config

import (
	"os"
)

type Config struct {
	ProjectID string
	Port      string
	LogLevel  string
}

func New() *Config {
	return &Config{
		ProjectID: os.Getenv("PROJECTID"),
		Port:      getPort(os.Getenv("PORT")),
		LogLevel:  os.Getenv("LOGLEVEL"),
	}
}

func getPort(port string) string {
	if port == "" {
		return "8080"
	}
	return port
}
