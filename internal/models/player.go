// internal/models/player.go
// Player is a person who can be rostered into a tournament and rated.
// Unlike models.User, a Player never authenticates: guests (spec'd
// contact handle nullable) are first-class Players with no account.

package models

import "time"

type Player struct {
	ID            string    `json:"id" db:"id"`
	DisplayName   string    `json:"display_name" db:"display_name"`
	ContactHandle *string   `json:"contact_handle,omitempty" db:"contact_handle"`
	UserID        *string   `json:"user_id,omitempty" db:"user_id"` // set if this player also has a login
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
