package email

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the logger instead of delivering them. With
// IncludeBody set the text body is logged too, which exposes one-time links;
// only enable it for local development.
type LogSender struct {
	logger      *slog.Logger
	IncludeBody bool
}

// NewLogSender creates a new LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	attrs := []slog.Attr{
		slog.String("from", msg.From.String()),
		slog.String("to", msg.To.String()),
		slog.String("subject", msg.Subject),
	}
	if s.IncludeBody {
		attrs = append(attrs, slog.String("body", msg.TextBody))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "email_sent", attrs...)
	return nil
}
