package entity

import (
	"time"

	"github.com/google/uuid"
)

// SocialLinks holds at most one profile URL per supported network. Absent
// networks are omitted from the wire format entirely.
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Empty reports whether no network link was resolved.
func (s SocialLinks) Empty() bool {
	return s.GitHub == "" && s.LinkedIn == "" && s.Twitter == ""
}

// Contact is the unit of storage and the API response shape. Email is the
// only required field and never changes after creation; everything else is
// best-effort.
type Contact struct {
	ID              uuid.UUID   `json:"id"`
	Email           string      `json:"email"`
	FullName        string      `json:"full_name,omitempty"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Company         string      `json:"company,omitempty"`
	Position        string      `json:"position,omitempty"`
	Location        string      `json:"location,omitempty"`
	AvatarURL       string      `json:"avatar_url,omitempty"`
	Social          SocialLinks `json:"social_links"`
	ConfidenceScore int         `json:"confidence_score"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
