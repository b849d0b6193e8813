package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

type StoreMappingRepository struct {
	db *gorm.DB
}

func NewStoreMappingRepository(db *gorm.DB) *StoreMappingRepository {
	return &StoreMappingRepository{db: db}
}

func (r *StoreMappingRepository) Create(ctx context.Context, m *domain.UserStoreMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *StoreMappingRepository) FindActiveByUserID(ctx context.Context, userID string) ([]domain.UserStoreMapping, error) {
	var mappings []domain.UserStoreMapping
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

// DeactivateByStoreID flips off every active mapping for a store and returns
// the affected user ids so their sessions can be revoked in bulk.
func (r *StoreMappingRepository) DeactivateByStoreID(ctx context.Context, storeID string) ([]string, error) {
	var mappings []domain.UserStoreMapping
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, nil
	}
	err = r.db.WithContext(ctx).Model(&domain.UserStoreMapping{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Update("is_active", false).Error
	if err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(mappings))
	for _, m := range mappings {
		userIDs = append(userIDs, m.UserID)
	}
	return userIDs, nil
}
