package rosterapi

import "time"

const (
	// Name identifies this provider in logs and metrics.
	Name = "rosterapi"

	defaultHTTPTimeout = 10 * time.Second
)
