package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// DB exposes the underlying handle for flows that need a transaction.
func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.firstUser(ctx, "phone_number = ? AND is_deleted = ?", phone, false)
}

func (r *UserRepository) GetVerifiedByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.firstUser(ctx, "phone_number = ? AND is_verified = ? AND is_deleted = ?", phone, true, false)
}

func (r *UserRepository) GetActiveByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.firstUser(ctx, "phone_number = ? AND is_active = ? AND is_deleted = ?", phone, true, false)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.firstUser(ctx, "id = ?", id)
}

func (r *UserRepository) GetActiveByID(ctx context.Context, id string) (*domain.User, error) {
	return r.firstUser(ctx, "id = ? AND is_active = ? AND is_deleted = ?", id, true, false)
}

func (r *UserRepository) firstUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
