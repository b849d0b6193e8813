package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// RefreshTokenRepository provides DB access for the refresh token log.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) Save(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// GetActive looks up a non-revoked row by exact token string; nil when absent.
func (r *RefreshTokenRepository) GetActive(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND revoked = ?", token, false).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByTokenAndUser removes the row on logout. A row that is already gone
// is not an error.
func (r *RefreshTokenRepository) DeleteByTokenAndUser(ctx context.Context, token, userID string) error {
	return r.db.WithContext(ctx).
		Where("token = ? AND user_id = ?", token, userID).
		Delete(&domain.RefreshToken{}).Error
}

// RevokeAllForUsers bulk-marks every live token of the given users revoked;
// used when a store session is force-ended.
func (r *RefreshTokenRepository) RevokeAllForUsers(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id IN ? AND revoked = ?", userIDs, false).
		Update("revoked", true).Error
}
