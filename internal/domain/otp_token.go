package domain

import "time"

type VerificationType string

const (
	// VerificationGupshup is a locally generated code delivered over SMS.
	VerificationGupshup VerificationType = "GUPSHUP"
	// VerificationFirebase delegates code checking to a Firebase phone
	// verification session; no local code is stored.
	VerificationFirebase VerificationType = "FIREBASE"
)

// DefaultOtpRetries is the number of wrong guesses allowed per OTP row.
const DefaultOtpRetries = 3

// OtpToken is one login challenge for a phone number. Rows are never deleted:
// the lifecycle ends by flipping IsActive off, so history stays queryable.
type OtpToken struct {
	ID               int64            `json:"id" gorm:"primaryKey"`
	PhoneNumber      string           `json:"phone_number" gorm:"size:15;index;not null"`
	Otp              string           `json:"-" gorm:"size:10"`
	VerificationType VerificationType `json:"verification_type" gorm:"size:20"`
	VerificationID   *string          `json:"verification_id,omitempty" gorm:"size:255"`
	UserID           *string          `json:"user_id,omitempty" gorm:"size:36"`
	ValidTill        time.Time        `json:"valid_till" gorm:"not null"`
	RetriesCount     int              `json:"retries_count" gorm:"default:0"`
	RetriesAllowed   int              `json:"retries_allowed" gorm:"default:3"`
	IsActive         bool             `json:"is_active" gorm:"default:true;index"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (OtpToken) TableName() string { return "otp_tokens" }

func (t *OtpToken) IsExpired(now time.Time) bool {
	return t.ValidTill.Before(now)
}

func (t *OtpToken) RetriesExhausted() bool {
	return t.RetriesCount >= t.RetriesAllowed
}
