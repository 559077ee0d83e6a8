package config

// SnapshotConfig controls lineup snapshot persistence and retention.
type SnapshotConfig struct {
	DBPath        string
	RetentionDays int
	SweepInterval Duration
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		DBPath:        envOrDefault(envDBPath, defaultDBPath),
		RetentionDays: intEnvOrDefault(envRetentionDays, defaultRetentionDays),
		SweepInterval: durationEnvOrDefault(envSweepInterval, defaultSweepInterval),
	}
}
