package providers

import (
	"context"
	"log/slog"

	"lineup-service/internal/logging"
)

// logWithProvider emits a log entry tagged with the provider name. Nil loggers
// are tolerated so decorators stay quiet in tests.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
