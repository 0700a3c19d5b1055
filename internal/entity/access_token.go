package entity

import "time"

type AccessToken struct {
	Base

	OwnerID string `gorm:"index"`
	Owner   User   `gorm:"foreignKey:OwnerID"`

	// TokenHash is the sha-512 hex digest of the token secret. The secret
	// itself is never stored.
	TokenHash string

	Scopes    Array[string] `gorm:"type:text"`
	ExpiresAt time.Time

	// Hidden tokens back browser sessions and never show up in listings.
	Hidden      bool
	Description string
}
