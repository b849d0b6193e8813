package domain

import "time"

type UserRole string

const (
	RoleVisitor           UserRole = "VISITOR"
	RoleAdmin             UserRole = "ADMIN"
	RoleRevenueManager    UserRole = "REVENUEMANAGER"
	RoleClusterManager    UserRole = "CLUSTERMANAGER"
	RoleShiftManager      UserRole = "SHIFTMANAGER"
	RoleFranchiseOwner    UserRole = "FRANCHISEOWNER"
	RoleConsumer          UserRole = "CONSUMER"
	RoleWarehouseAdmin    UserRole = "WAREHOUSEADMIN"
	RoleInternal          UserRole = "INTERNAL"
	RoleIntegration       UserRole = "INTEGRATION"
	RoleFosUser           UserRole = "FOSUSER"
	RoleStoreManager      UserRole = "STOREMANAGER"
	RoleAccountManagement UserRole = "ACCOUNTMANAGEMENT"
	RoleFinance           UserRole = "FINANCE"
	RoleMarketing         UserRole = "MARKETING"
	RoleWarehouseOps      UserRole = "WAREHOUSEOPS"
	RoleSecondaryDilution UserRole = "SECODARYDILUTION"
	RoleITAdmin           UserRole = "ITADMIN"
	RoleCCExecutive       UserRole = "CCEXECUTIVE"
	RoleCCManager         UserRole = "CCMANAGER"
	RoleCoreTeam          UserRole = "CORETEAM"
	RoleCreditLimit1      UserRole = "CREDITLIMIT1"
	RoleCreditLimit2      UserRole = "CREDITLIMIT2"
	RoleFosRider          UserRole = "FOSRIDER"
	RoleCC1               UserRole = "CC1"
	RoleCC2               UserRole = "CC2"
)

// UserPreferences is the preference blob attached to each user. Only the
// fields the login flows read are modelled; the column keeps whatever else
// the consumer service writes into it.
type UserPreferences struct {
	OrderCount        *int  `json:"orderCount,omitempty"`
	IsVoucherEligible *bool `json:"isVoucherEligible,omitempty"`
	IsPrepaidUser     *bool `json:"isPrepaidUser,omitempty"`
}

type User struct {
	ID              string           `json:"id" gorm:"primaryKey;size:36"`
	Name            string           `json:"name,omitempty" gorm:"size:100"`
	Greeting        string           `json:"greeting,omitempty" gorm:"size:100"`
	GreetingSuffix  string           `json:"greeting_suffix,omitempty" gorm:"size:100"`
	CountryCode     string           `json:"country_code,omitempty" gorm:"size:5"`
	PhoneNumber     string           `json:"phone_number" gorm:"size:15;index"`
	Email           string           `json:"email,omitempty" gorm:"size:255"`
	Roles           []UserRole       `json:"roles" gorm:"serializer:json;type:text"`
	IsActive        bool             `json:"is_active" gorm:"default:true"`
	IsVerified      bool             `json:"is_verified" gorm:"default:false"`
	IsBlocked       bool             `json:"is_blocked" gorm:"default:false"`
	IsDeleted       bool             `json:"is_deleted" gorm:"default:false"`
	UserPreferences *UserPreferences `json:"userPreferences,omitempty" gorm:"serializer:json;type:text;column:user_preferences"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// HasAnyRole reports whether the user carries at least one role from the set.
func (u *User) HasAnyRole(roles map[UserRole]struct{}) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if _, ok := roles[r]; ok {
			return true
		}
	}
	return false
}

func (u *User) HasRole(role UserRole) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsNew implements the "is new user" flag the login response exposes: a user
// with no order history yet is still treated as new so the app can show the
// onboarding flow.
func (u *User) IsNew() bool {
	if u == nil || u.UserPreferences == nil {
		return true
	}
	p := u.UserPreferences
	noOrders := p.OrderCount == nil || *p.OrderCount == 0
	if p.IsVoucherEligible == nil {
		return noOrders
	}
	return *p.IsVoucherEligible && noOrders
}
