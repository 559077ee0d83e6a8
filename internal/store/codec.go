package store

import (
	"encoding/json"

	"lineup-service/internal/domain/lineup"
)

func encodeState(state *lineup.CompositionState) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeState(payload string) (*lineup.CompositionState, error) {
	var state lineup.CompositionState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, err
	}
	state.Recount()
	return &state, nil
}
