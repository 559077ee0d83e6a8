package config

import "time"

const (
	envPort          = "PORT"
	envProvider      = "PROVIDER"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"
	envDBPath        = "SNAPSHOT_DB_PATH"
	envRetentionDays = "SNAPSHOT_RETENTION_DAYS"
	envSweepInterval = "SNAPSHOT_SWEEP_INTERVAL"
	envRosterBaseURL = "ROSTER_API_BASE_URL"
	envRosterAPIKey  = "ROSTER_API_KEY"
	envRosterFixture = "ROSTER_FIXTURE_PATH"

	defaultPort        = "4000"
	defaultProvider    = "fixture"
	defaultMetricsPort = "9090"
	defaultDBPath      = "data/lineups.db"
	// Saved compositions expire after a rolling 30-day window.
	defaultRetentionDays = 30
	defaultSweepInterval = 1 * Duration(time.Hour)
)
