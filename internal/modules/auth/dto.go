package auth

import "github.com/Monachawla1712/LivSorted-auth-service/internal/domain"

type OtpRequest struct {
	CountryCode    string `json:"country_code" binding:"required"`
	PhoneNumber    string `json:"phone_number" binding:"required,len=10,numeric"`
	VerificationID string `json:"verificationId,omitempty"`
}

type VerifyOtpRequest struct {
	CountryCode string `json:"country_code,omitempty"`
	PhoneNumber string `json:"phone_number" binding:"required,len=10,numeric"`
	Otp         string `json:"otp" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type StoreRegistrationRequest struct {
	StoreID     string `json:"storeId" binding:"required"`
	CountryCode string `json:"country_code" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required,len=10,numeric"`
	Name        string `json:"name" binding:"required"`
}

// OtpResponse deliberately reveals nothing about registration state beyond
// the coarse isNewUser flag.
type OtpResponse struct {
	Name           *string `json:"name"`
	Greeting       *string `json:"greeting"`
	GreetingSuffix *string `json:"greetingSuffix"`
	IsNewUser      bool    `json:"isNewUser"`
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user"`
	IsOwner      *bool        `json:"isOwner,omitempty"`
}
