package models

import "time"

// RefreshToken is a persisted, single-use refresh credential. Rotation
// revokes the presented row and stores a replacement, so a replayed token
// string no longer matches any active row.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"type:text;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Active reports whether the token may still be exchanged at the given
// instant: not revoked and not past its expiry.
func (rt *RefreshToken) Active(now time.Time) bool {
	return !rt.IsRevoked && rt.ExpiresAt.After(now)
}
