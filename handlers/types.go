package handlers

import "github.com/MatBureau/devops-health/internal/system"

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	WelcomeMessage     = "Hello DevOps! - Flask Application Running Successfully"
	DefaultEnvironment = "development"

	// ISO-8601 with microseconds and UTC offset
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"
)

type WelcomeResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// HealthResponse carries SystemInfo when healthy and Error otherwise, never both.
type HealthResponse struct {
	Status     string             `json:"status"`
	Timestamp  string             `json:"timestamp"`
	SystemInfo *system.SystemInfo `json:"system_info,omitempty"`
	Error      string             `json:"error,omitempty"`
}
