package domain

import "time"

// RefreshToken is the append-only log of issued refresh tokens.
//
// Revocation is monotonic: a row that is marked revoked is never accepted
// again, and nothing un-revokes it. Logout deletes the row outright; every
// other invalidation path flips Revoked so the audit trail survives.
type RefreshToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"size:1024;index;not null"`
	UserID    string    `json:"user_id" gorm:"size:36;index;not null"`
	Revoked   bool      `json:"revoked" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
