package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type HealthStatus struct {
	Healthy       bool      `json:"healthy"`
	CheckedAt     time.Time `json:"checked_at"`
	Connections   int       `json:"notification_connections"`
	NATSEnabled   bool      `json:"nats_enabled"`
	NATSConnected bool      `json:"nats_connected"`
	TeamsLoaded   int       `json:"teams_loaded"`
	Errors        []string  `json:"errors"`
}

type connectionChecker interface {
	IsConnected() bool
}

// HealthChecker reports the state of the process and its last fetches
type HealthChecker struct {
	services *Services
	nats     connectionChecker
}

func NewHealthChecker(services *Services, nats connectionChecker) *HealthChecker {
	return &HealthChecker{services: services, nats: nats}
}

// Check never fails. Controller and store errors are reported but only a
// lost NATS connection marks the process unhealthy.
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Healthy:     true,
		CheckedAt:   time.Now(),
		Connections: h.services.Hub.ConnectionCount(),
		Errors:      []string{},
	}

	if h.nats != nil {
		status.NATSEnabled = true
		status.NATSConnected = h.nats.IsConnected()
		if !status.NATSConnected {
			status.Healthy = false
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	for name, msg := range map[string]string{
		"custom players": h.services.Players.Err(),
		"custom coaches": h.services.Coaches.Err(),
		"custom GMs":     h.services.GMs.Err(),
	} {
		if msg != "" {
			status.Errors = append(status.Errors, fmt.Sprintf("%s: %s", name, msg))
		}
	}

	teams := h.services.Teams.State()
	status.TeamsLoaded = len(teams.Teams)
	if teams.Error != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("team logos: %s", *teams.Error))
	}

	return status
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

// Export renders the health status in the Prometheus text format
func (h *HealthChecker) Export(ctx context.Context) string {
	status := h.Check(ctx)

	var b strings.Builder
	gauge := func(name, help string, value int) {
		fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s gauge\n%s %d\n\n", name, help, name, name, value)
	}

	gauge("courtside_healthy", "Whether the process is healthy", boolToInt(status.Healthy))
	gauge("courtside_notification_connections", "Connected notification WebSocket clients", status.Connections)
	gauge("courtside_nats_connected", "Whether NATS is connected", boolToInt(status.NATSConnected))
	gauge("courtside_teams_loaded", "Number of NBA teams held by the logo store", status.TeamsLoaded)
	gauge("courtside_errors", "Number of controllers or stores holding an error", len(status.Errors))

	return b.String()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
