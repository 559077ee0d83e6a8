package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that drops everything, for quiet tests.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
