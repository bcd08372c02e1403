// Package models holds the value types shared by the session, recommendation
// and advisory layers.
package models

// Identity is the verified claim set of the logged-in user. It is replaced
// wholesale on every login and never updated in place.
type Identity struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// DefaultDisplayName is used when the provider omits the name claim.
const DefaultDisplayName = "User"
