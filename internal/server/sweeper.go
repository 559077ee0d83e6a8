package server

import (
	"context"

	"lineup-service/internal/sweeper"
)

// Sweeper defines the minimal retention sweeper behavior needed by the server.
type Sweeper interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() sweeper.Status
}
