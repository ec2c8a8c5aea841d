package dto

// LookupRequest is the payload for POST /lookup.
type LookupRequest struct {
	Email string `json:"email"`
}
