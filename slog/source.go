package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wxclip/wxclip"
)

// Ensure LoggingSource implements wxclip.URLSource.
var _ wxclip.URLSource = (*LoggingSource)(nil)

// LoggingSource wraps a URLSource with discovery logging.
type LoggingSource struct {
	next   wxclip.URLSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next wxclip.URLSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Discover(ctx context.Context, ref string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("url discovery",
			"ref", ref,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, ref)
}
