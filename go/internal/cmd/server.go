package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/courtside/go/clients/espn_client"
	"github.com/mcdev12/courtside/go/internal/models"
	"github.com/mcdev12/courtside/go/internal/resource"
	"github.com/mcdev12/courtside/go/internal/teams"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func setupServer(port int, services *Services) *http.Server {
	// Setup HTTP/2 server
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: h2c.NewHandler(newHandler(services), &http2.Server{}),
	}
}

func newHandler(services *Services) http.Handler {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	registerResource(mux, "players", services.Players)
	registerResource(mux, "coaches", services.Coaches)
	registerResource(mux, "gms", services.GMs)
	registerData(mux, services)

	mux.Handle("GET /ws/notifications", services.Hub)
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("all") == "true" {
			writeJSON(w, http.StatusOK, services.Recent.All())
			return
		}
		writeJSON(w, http.StatusOK, services.Recent.Active())
	})

	setupHealthCheck(mux, services)

	// Wrap with CORS
	return c.Handler(mux)
}

// registerResource exposes one controller. Operations are detached from the
// request context: once issued, a round trip runs to completion even if the
// browser goes away.
func registerResource[E any, P resource.Payload](mux *http.ServeMux, name string, c *resource.Controller[E, P]) {
	base := "/api/custom/" + name
	failed := func(w http.ResponseWriter, op string) {
		log.Warn().Str("resource", c.Labels().Plural).Str("op", op).Str("error", c.Err()).Msg("operation failed")
		writeError(w, http.StatusUnprocessableEntity, c.Err())
	}

	mux.HandleFunc("GET "+base, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.State())
	})

	mux.HandleFunc("POST "+base+"/refresh", func(w http.ResponseWriter, r *http.Request) {
		c.Fetch(context.WithoutCancel(r.Context()))
		writeJSON(w, http.StatusOK, c.State())
	})

	mux.HandleFunc("POST "+base, func(w http.ResponseWriter, r *http.Request) {
		var payload P
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created := c.Create(context.WithoutCancel(r.Context()), payload)
		if created == nil {
			failed(w, "create")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})

	mux.HandleFunc("PUT "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id format")
			return
		}

		var payload P
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		updated := c.Update(context.WithoutCancel(r.Context()), id, payload)
		if updated == nil {
			failed(w, "update")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	})

	mux.HandleFunc("DELETE "+base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id format")
			return
		}

		name := r.URL.Query().Get("name")
		if !c.Delete(context.WithoutCancel(r.Context()), id, name) {
			failed(w, "delete")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func registerData(mux *http.ServeMux, services *Services) {
	mux.HandleFunc("GET /api/teams", func(w http.ResponseWriter, r *http.Request) {
		state := services.Teams.State()
		if conference := r.URL.Query().Get("conference"); conference != "" {
			state.Teams = services.Teams.ByConference(teams.Conference(conference))
		} else {
			state.Teams = services.Teams.Sorted()
		}
		writeJSON(w, http.StatusOK, state)
	})

	mux.HandleFunc("POST /api/teams/refresh", func(w http.ResponseWriter, r *http.Request) {
		services.Teams.FetchTeamLogos(context.WithoutCancel(r.Context()))
		writeJSON(w, http.StatusOK, services.Teams.State())
	})

	mux.HandleFunc("GET /api/teams/{abbreviation}", func(w http.ResponseWriter, r *http.Request) {
		team, ok := services.Teams.ByAbbreviation(r.PathValue("abbreviation"))
		if !ok {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}

		resp := teamResponse{TeamData: team}
		if logo, ok := team.PrimaryLogo(); ok {
			resp.Logo = &logo
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("GET /api/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		games, err := services.ESPN.GetScoreboard(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load scoreboard")
			writeError(w, http.StatusBadGateway, "failed to load scoreboard")
			return
		}

		switch status := r.URL.Query().Get("status"); status {
		case "":
		case "live":
			games = filterGames(games, espn_client.Game.Live)
		case "final":
			games = filterGames(games, espn_client.Game.Finished)
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", status))
			return
		}
		writeJSON(w, http.StatusOK, games)
	})

	mux.HandleFunc("GET /api/news", func(w http.ResponseWriter, r *http.Request) {
		articles, err := services.ESPN.GetNews(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("failed to load news")
			writeError(w, http.StatusBadGateway, "failed to load news")
			return
		}
		writeJSON(w, http.StatusOK, articles)
	})
}

// teamResponse is a team with the logo the UI should show
type teamResponse struct {
	models.TeamData
	Logo *models.TeamLogo `json:"logo,omitempty"`
}

func filterGames(games []espn_client.Game, keep func(espn_client.Game) bool) []espn_client.Game {
	out := []espn_client.Game{}
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func setupHealthCheck(mux *http.ServeMux, services *Services) {
	var natsCheck connectionChecker
	if services.NATS != nil {
		natsCheck = services.NATS
	}
	checker := NewHealthChecker(services, natsCheck)

	mux.Handle("GET /health/status", checker)
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		if _, err := w.Write([]byte(checker.Export(r.Context()))); err != nil {
			log.Error().Err(err).Msg("failed to write metrics response")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
