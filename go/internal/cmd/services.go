package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/courtside/go/clients"
	"github.com/mcdev12/courtside/go/clients/custom_api_client"
	"github.com/mcdev12/courtside/go/clients/espn_client"
	"github.com/mcdev12/courtside/go/internal/config"
	"github.com/mcdev12/courtside/go/internal/custom"
	"github.com/mcdev12/courtside/go/internal/notify"
	"github.com/mcdev12/courtside/go/internal/teams"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// recentNotifications bounds how many notifications the poll endpoint keeps
const recentNotifications = 50

type Services struct {
	Players *custom.PlayersController
	Coaches *custom.CoachesController
	GMs     *custom.GMsController
	Teams   *teams.Store
	ESPN    *espn_client.EspnClient

	Hub    *notify.Hub
	Recent *notify.Recorder
	NATS   *notify.NATSSink

	closers []io.Closer
}

func setupServices(cfg *config.Config, clock clockwork.Clock) (*Services, error) {
	// Wire up dependency injection chain
	// Clients → Notifier → Controllers

	customCfg := cfg.Source(clients.ExternalSourceCustom)
	customClient := custom_api_client.NewCustomApiClient(customCfg.BaseURL, customCfg.APIToken)
	customClient.SetTimeout(customCfg.Timeout)

	espnCfg := cfg.Source(clients.ExternalSourceESPN)
	espnClient := espn_client.NewEspnClient(espnCfg.BaseURL)
	espnClient.SetTimeout(espnCfg.Timeout)

	hub := notify.NewHub(notify.DefaultHubConfig())
	recent := notify.NewRecorder(clock, recentNotifications)
	sinks := []notify.Sink{
		notify.NewLogSink(zerolog.New(os.Stderr).With().Timestamp().Str("component", "notifications").Logger()),
		hub,
		recent,
	}

	var closers []io.Closer
	var natsSink *notify.NATSSink
	if cfg.Notifications.NATSURL != "" {
		natsCfg := notify.DefaultNATSConfig()
		natsCfg.URL = cfg.Notifications.NATSURL
		natsCfg.SubjectPrefix = cfg.Notifications.SubjectPrefix

		var err error
		natsSink, err = notify.NewNATSSink(natsCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up NATS notifications: %w", err)
		}
		sinks = append(sinks, natsSink)
		closers = append(closers, natsSink)
	}

	notifier := notify.NewNotifier(clock, cfg.Notifications.Timeout, sinks...)

	return &Services{
		Players: custom.NewPlayers(customClient.Players(), notifier),
		Coaches: custom.NewCoaches(customClient.Coaches(), notifier),
		GMs:     custom.NewGMs(customClient.GMs(), notifier),
		Teams:   teams.NewStore(espnClient),
		ESPN:    espnClient,
		Hub:     hub,
		Recent:  recent,
		NATS:    natsSink,
		closers: closers,
	}, nil
}

// Initialize runs the first fetch of every controller and the team store.
// Each one records its own failure, so this only returns ctx errors.
func (s *Services) Initialize(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.Players.Initialize(gctx)
		return nil
	})
	g.Go(func() error {
		s.Coaches.Initialize(gctx)
		return nil
	})
	g.Go(func() error {
		s.GMs.Initialize(gctx)
		return nil
	})
	g.Go(func() error {
		s.Teams.FetchTeamLogos(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Services) Close() {
	for _, c := range s.closers {
		_ = c.Close()
	}
}
