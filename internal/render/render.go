// Package render declares the contracts of the external rendering
// collaborators. The engine only hands them a projection and consumes
// success or failure; the implementations live outside this service.
package render

import (
	"context"
	"time"

	"lineup-service/internal/projection"
)

// Renderer turns a summary into a raster image using the given layout.
type Renderer interface {
	Render(ctx context.Context, summary projection.TeamCompositionSummary, layout projection.Layout) ([]byte, error)
}

// Frame is one raster frame with its display duration.
type Frame struct {
	Image    []byte
	Duration time.Duration
}

// FrameEncoder assembles an ordered sequence of frames into a single
// animated-image byte stream. Progress is reported in [0,1]; completion
// (or failure) arrives via the done callback.
type FrameEncoder interface {
	Encode(ctx context.Context, frames []Frame, progress func(float64), done func([]byte, error))
}

// EncodeSync adapts the callback contract of a FrameEncoder into a
// blocking call. It returns early if the context is cancelled before
// the encoder finishes.
func EncodeSync(ctx context.Context, enc FrameEncoder, frames []Frame) ([]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)

	enc.Encode(ctx, frames, nil, func(data []byte, err error) {
		ch <- result{data: data, err: err}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.data, res.err
	}
}
