package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           nats.DefaultURL,
		SubjectPrefix: "courtside.notifications",
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSSink publishes each notification on <prefix>.<level>
type NATSSink struct {
	nc     *nats.Conn
	pub    msgPublisher
	prefix string
}

func NewNATSSink(cfg NATSConfig) (*NATSSink, error) {
	opts := []nats.Option{
		nats.Name("courtside"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	sink := newNATSSink(nc, cfg.SubjectPrefix)
	sink.nc = nc
	return sink, nil
}

func newNATSSink(pub msgPublisher, prefix string) *NATSSink {
	return &NATSSink{pub: pub, prefix: prefix}
}

// Subject returns the subject notifications of level are published on
func (s *NATSSink) Subject(level Level) string {
	return fmt.Sprintf("%s.%s", s.prefix, level)
}

func (s *NATSSink) Deliver(n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal notification")
		return
	}

	subject := s.Subject(n.Level)
	err = s.pub.PublishMsg(&nats.Msg{
		Subject: subject,
		Data:    data,
		Header: nats.Header{
			"Notification-ID":    []string{n.ID.String()},
			"Notification-Level": []string{string(n.Level)},
		},
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("subject", subject).
			Str("notification_id", n.ID.String()).
			Msg("failed to publish notification")
		return
	}

	log.Debug().Str("subject", subject).Str("notification_id", n.ID.String()).Msg("published notification")
}

// IsConnected reports whether the underlying connection is up. A sink built
// without a connection counts as connected.
func (s *NATSSink) IsConnected() bool {
	if s.nc == nil {
		return true
	}
	return s.nc.IsConnected()
}

func (s *NATSSink) Close() error {
	if s.nc != nil {
		s.nc.Close()
	}
	return nil
}
