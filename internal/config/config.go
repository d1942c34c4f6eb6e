package config

import (
	"fmt"
	"os"
)

// TaskListIndex is the secondary index over tasks by listId.
const TaskListIndex = "list_index"

type Config struct {
	HTTPAddr    string
	MetricsAddr string
	LogLevel    string
	RedisAddr   string
	NATSURL     string
	ListTable   string
	TasksTable  string
	JWKSURI     string
	Audience    string
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:    os.Getenv("HTTP_ADDR"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		NATSURL:     os.Getenv("NATS_URL"),
		ListTable:   os.Getenv("LIST_TABLE"),
		TasksTable:  os.Getenv("TASKS_TABLE"),
		JWKSURI:     os.Getenv("JWKS_URI"),
		Audience:    os.Getenv("AUDIENCE"),
	}

	// Validation
	var missing []string
	if cfg.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	if cfg.MetricsAddr == "" {
		missing = append(missing, "METRICS_ADDR")
	}
	if cfg.LogLevel == "" {
		missing = append(missing, "LOG_LEVEL")
	}
	if cfg.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if cfg.NATSURL == "" {
		missing = append(missing, "NATS_URL")
	}
	if cfg.ListTable == "" {
		missing = append(missing, "LIST_TABLE")
	}
	if cfg.TasksTable == "" {
		missing = append(missing, "TASKS_TABLE")
	}
	if cfg.JWKSURI == "" {
		missing = append(missing, "JWKS_URI")
	}
	if cfg.Audience == "" {
		missing = append(missing, "AUDIENCE")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required env vars: %v", missing)
	}

	return cfg, nil
}
