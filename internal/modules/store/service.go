package store

import (
	"context"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// Service owns user↔store mappings and the warehouse-backed store listing.
type Service struct {
	mappings  MappingRepository
	warehouse WarehouseClient
}

func NewService(mappings MappingRepository, warehouse WarehouseClient) *Service {
	return &Service{mappings: mappings, warehouse: warehouse}
}

func (s *Service) FindByUserID(ctx context.Context, userID string) ([]domain.UserStoreMapping, error) {
	return s.mappings.FindActiveByUserID(ctx, userID)
}

// RequireMapping fails with ErrNotMapped when the user has no active store.
func (s *Service) RequireMapping(ctx context.Context, userID string) ([]domain.UserStoreMapping, error) {
	mappings, err := s.mappings.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, ErrNotMapped
	}
	return mappings, nil
}

// RequireNoMapping fails with ErrAlreadyMapped when a mapping already exists;
// POS registration must not double-map a manager.
func (s *Service) RequireNoMapping(ctx context.Context, userID string) error {
	mappings, err := s.mappings.FindActiveByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if len(mappings) > 0 {
		return ErrAlreadyMapped
	}
	return nil
}

func (s *Service) Save(ctx context.Context, m *domain.UserStoreMapping) error {
	m.IsActive = true
	return s.mappings.Create(ctx, m)
}

// GetStores returns warehouse store detail for every store mapped to a user.
func (s *Service) GetStores(ctx context.Context, userID string) ([]WarehouseStore, error) {
	mappings, err := s.mappings.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	storeIDs := make([]string, 0, len(mappings))
	for _, m := range mappings {
		storeIDs = append(storeIDs, m.StoreID)
	}
	return s.warehouse.GetStoresByIDs(ctx, storeIDs)
}

// InactivateByStore deactivates every mapping of a store and returns the
// affected user ids.
func (s *Service) InactivateByStore(ctx context.Context, storeID string) ([]string, error) {
	return s.mappings.DeactivateByStoreID(ctx, storeID)
}
