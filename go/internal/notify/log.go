package notify

import (
	"github.com/rs/zerolog"
)

// LogSink writes notifications to a zerolog logger
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Deliver(n Notification) {
	event := s.logger.Info()
	if n.Level == LevelError {
		event = s.logger.Warn()
	}
	event.
		Str("notification_id", n.ID.String()).
		Str("level", string(n.Level)).
		Msg(n.Message)
}
