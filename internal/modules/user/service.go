package user

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/trace"
)

// Service is the user directory: resolve, create and update users and their
// roles on behalf of the login flows. Profile/address CRUD lives elsewhere.
type Service struct {
	users Repository
}

func NewService(users Repository) *Service {
	return &Service{users: users}
}

// GetVerifiedUserFromPhone returns nil when the phone has no verified user;
// that is a normal outcome for first-time logins.
func (s *Service) GetVerifiedUserFromPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.users.GetVerifiedByPhone(ctx, phone)
}

func (s *Service) GetUserFromPhone(ctx context.Context, phone string) (*domain.User, error) {
	return s.users.GetByPhone(ctx, phone)
}

func (s *Service) GetActiveUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetActiveByID(ctx, id)
}

func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserFromPhoneAndCheckRoles resolves an active user and rejects phones
// whose user carries none of the allowed roles.
func (s *Service) GetUserFromPhoneAndCheckRoles(ctx context.Context, phone string, allowed map[domain.UserRole]struct{}) (*domain.User, error) {
	u, err := s.users.GetActiveByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrPhoneNotRegistered
	}
	if !u.HasAnyRole(allowed) {
		return nil, ErrForbidden
	}
	return u, nil
}

// GetOrCreateUserFromPhoneAndRole resolves the user for a freshly verified
// phone. New users start as verified visitors with the surface role; existing
// users pick up the role and the verified flag if missing.
func (s *Service) GetOrCreateUserFromPhoneAndRole(ctx context.Context, phone string, role domain.UserRole, otpUserID *string) (*domain.User, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		id := uuid.NewString()
		if otpUserID != nil && *otpUserID != "" {
			id = *otpUserID
		}
		u = &domain.User{
			ID:              id,
			PhoneNumber:     phone,
			Roles:           []domain.UserRole{domain.RoleVisitor, role},
			IsActive:        true,
			IsVerified:      true,
			UserPreferences: &domain.UserPreferences{},
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		log.Printf("user_created trace_id=%s user_id=%s role=%s", trace.ID(ctx), u.ID, role)
		return u, nil
	}

	save := false
	if !u.HasRole(role) {
		u.Roles = append(u.Roles, role)
		save = true
	}
	if !u.IsVerified {
		u.IsVerified = true
		save = true
	}
	if u.UserPreferences == nil {
		u.UserPreferences = &domain.UserPreferences{}
		save = true
	}
	if save {
		if err := s.users.Save(ctx, u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// SaveUser persists explicit field updates made by a caller.
func (s *Service) SaveUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
