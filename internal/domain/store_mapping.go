package domain

import "time"

// UserStoreMapping links a franchise/POS user to a warehouse store. Store
// detail itself lives in the warehouse service; only the mapping is owned
// here.
type UserStoreMapping struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"size:36;index;not null"`
	StoreID   string    `json:"store_id" gorm:"size:36;index;not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserStoreMapping) TableName() string { return "user_store_mappings" }
