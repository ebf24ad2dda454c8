package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is one persisted record of a collection. Documents are written
// once and never updated.
type Document struct {
	ID         uuid.UUID       `json:"id"`
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
