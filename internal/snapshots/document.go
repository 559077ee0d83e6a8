package snapshots

import (
	"time"

	"lineup-service/internal/domain/lineup"
)

// DocumentVersion identifies the export document format.
const DocumentVersion = "1.0"

// Document is the file exchange format for a saved composition.
type Document struct {
	Version         string                   `json:"version"`
	SavedAt         time.Time                `json:"savedAt"`
	TeamComposition *lineup.CompositionState `json:"teamComposition"`
}
