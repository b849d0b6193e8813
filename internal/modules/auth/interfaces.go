package auth

import (
	"context"
	"time"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/store"
	jwtsvc "github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/jwt"
)

// OtpRepository is storage for OTP challenge rows.
type OtpRepository interface {
	Create(ctx context.Context, t *domain.OtpToken) error
	Save(ctx context.Context, t *domain.OtpToken) error
	LastActiveByPhone(ctx context.Context, phone string) (*domain.OtpToken, error)
	LastActiveFederatedByPhone(ctx context.Context, phone string) (*domain.OtpToken, error)
	ActiveUnexpiredByPhone(ctx context.Context, phone string, now time.Time) (*domain.OtpToken, error)
	DeactivateExpired(ctx context.Context, phone string, now time.Time) error
	DeactivateFederated(ctx context.Context, phone string) error
	DeactivateAllActive(ctx context.Context, phone string) error
}

// RefreshRepository is storage for the refresh token log.
type RefreshRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	Save(ctx context.Context, t *domain.RefreshToken) error
	GetActive(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteByTokenAndUser(ctx context.Context, token, userID string) error
	RevokeAllForUsers(ctx context.Context, userIDs []string) error
}

// UserDirectory is the slice of the user module the login flows consume.
type UserDirectory interface {
	GetVerifiedUserFromPhone(ctx context.Context, phone string) (*domain.User, error)
	GetUserFromPhone(ctx context.Context, phone string) (*domain.User, error)
	GetUserFromPhoneAndCheckRoles(ctx context.Context, phone string, allowed map[domain.UserRole]struct{}) (*domain.User, error)
	GetOrCreateUserFromPhoneAndRole(ctx context.Context, phone string, role domain.UserRole, otpUserID *string) (*domain.User, error)
	GetActiveUserByID(ctx context.Context, id string) (*domain.User, error)
	SaveUser(ctx context.Context, u *domain.User) (*domain.User, error)
}

// StoreDirectory is the slice of the store module the login flows consume.
type StoreDirectory interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.UserStoreMapping, error)
	RequireMapping(ctx context.Context, userID string) ([]domain.UserStoreMapping, error)
	RequireNoMapping(ctx context.Context, userID string) error
	Save(ctx context.Context, m *domain.UserStoreMapping) error
	GetStores(ctx context.Context, userID string) ([]store.WarehouseStore, error)
	InactivateByStore(ctx context.Context, storeID string) ([]string, error)
}

// NotificationGateway delivers OTP codes and validates Firebase sessions.
type NotificationGateway interface {
	SendOtp(ctx context.Context, countryCode, phoneNumber, otp string) error
	VerifyFirebase(ctx context.Context, verificationID, otp string) (int, error)
}

// TokenSigner is the slice of the jwt service the orchestrator needs.
type TokenSigner interface {
	Sign(payload jwtsvc.Payload, class jwtsvc.SecretClass) (string, error)
	Tokens(payload jwtsvc.Payload) (*jwtsvc.TokenPair, error)
	Verify(token string, class jwtsvc.SecretClass) (*jwtsvc.Payload, error)
}
