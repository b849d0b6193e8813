package store

import (
	"context"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// MappingRepository lists only the methods the store module uses.
type MappingRepository interface {
	Create(ctx context.Context, m *domain.UserStoreMapping) error
	FindActiveByUserID(ctx context.Context, userID string) ([]domain.UserStoreMapping, error)
	DeactivateByStoreID(ctx context.Context, storeID string) ([]string, error)
}
