package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lookup records a single enrichment request against the store, whether or
// not the resolution found anything.
type Lookup struct {
	ID              uuid.UUID  `json:"id"`
	EmailQueried    string     `json:"email_queried"`
	ContactID       *uuid.UUID `json:"contact_id,omitempty"`
	SearchTimestamp time.Time  `json:"search_timestamp"`
}
