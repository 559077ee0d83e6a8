package config

// RosterConfig configures where player rosters are fetched from.
type RosterConfig struct {
	BaseURL     string
	APIKey      string
	FixturePath string
}

func loadRoster() RosterConfig {
	return RosterConfig{
		BaseURL:     envOrDefault(envRosterBaseURL, ""),
		APIKey:      envOrDefault(envRosterAPIKey, ""),
		FixturePath: envOrDefault(envRosterFixture, ""),
	}
}
