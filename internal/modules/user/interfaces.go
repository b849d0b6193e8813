package user

import (
	"context"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// Repository lists only the methods the user directory uses.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	Save(ctx context.Context, u *domain.User) error
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetVerifiedByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetActiveByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetActiveByID(ctx context.Context, id string) (*domain.User, error)
}
