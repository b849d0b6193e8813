package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// OtpTokenRepository provides DB access for OTP challenge rows. Rows are only
// ever deactivated, never deleted, so the login history stays auditable.
type OtpTokenRepository struct {
	db *gorm.DB
}

func NewOtpTokenRepository(db *gorm.DB) *OtpTokenRepository {
	return &OtpTokenRepository{db: db}
}

func (r *OtpTokenRepository) Create(ctx context.Context, t *domain.OtpToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *OtpTokenRepository) Save(ctx context.Context, t *domain.OtpToken) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// LastActiveByPhone returns the most recently updated active row for a phone,
// or nil when there is none.
func (r *OtpTokenRepository) LastActiveByPhone(ctx context.Context, phone string) (*domain.OtpToken, error) {
	var t domain.OtpToken
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND is_active = ?", phone, true).
		Order("updated_at DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// LastActiveFederatedByPhone restricts the lookup to rows carrying a Firebase
// verification session id; this decides which verification path runs first.
func (r *OtpTokenRepository) LastActiveFederatedByPhone(ctx context.Context, phone string) (*domain.OtpToken, error) {
	var t domain.OtpToken
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND is_active = ? AND verification_id IS NOT NULL", phone, true).
		Order("updated_at DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ActiveUnexpiredByPhone returns the newest active row whose deadline has not
// passed; issue() reuses such a row instead of inserting a second one.
func (r *OtpTokenRepository) ActiveUnexpiredByPhone(ctx context.Context, phone string, now time.Time) (*domain.OtpToken, error) {
	var t domain.OtpToken
	err := r.db.WithContext(ctx).
		Where("phone_number = ? AND is_active = ? AND valid_till > ?", phone, true, now).
		Order("created_at DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeactivateExpired flips off active rows whose deadline already passed.
func (r *OtpTokenRepository) DeactivateExpired(ctx context.Context, phone string, now time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.OtpToken{}).
		Where("phone_number = ? AND is_active = ? AND valid_till <= ?", phone, true, now).
		Update("is_active", false).Error
}

// DeactivateFederated flips off all active Firebase session rows for a phone.
func (r *OtpTokenRepository) DeactivateFederated(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Model(&domain.OtpToken{}).
		Where("phone_number = ? AND is_active = ? AND verification_id IS NOT NULL", phone, true).
		Update("is_active", false).Error
}

// DeactivateAllActive flips off every active row for a phone regardless of
// channel; issuing a new federated session uses this.
func (r *OtpTokenRepository) DeactivateAllActive(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Model(&domain.OtpToken{}).
		Where("phone_number = ? AND is_active = ?", phone, true).
		Update("is_active", false).Error
}
