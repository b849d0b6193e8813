package auth

import "github.com/Monachawla1712/LivSorted-auth-service/internal/domain"

// LoginSurface names one of the distinct login endpoints.
type LoginSurface string

const (
	SurfaceConsumer  LoginSurface = "consumer"
	SurfaceAdmin     LoginSurface = "admin"
	SurfaceFos       LoginSurface = "fos"
	SurfacePos       LoginSurface = "pos"
	SurfaceIms       LoginSurface = "ims"
	SurfaceFranchise LoginSurface = "franchise"
)

// SurfacePolicy is the declarative per-surface authorization rule, evaluated
// by one function instead of inline role checks on every endpoint.
type SurfacePolicy struct {
	// SendRoles gates OTP issuance. Empty means anyone may request a code.
	SendRoles []domain.UserRole
	// VerifyRoles gates token issuance after a correct code. Empty means no
	// role requirement at verify time.
	VerifyRoles []domain.UserRole
	// CreateRole, when set, lets verify resolve-or-create the user with this
	// role. Surfaces without it reject unknown phones.
	CreateRole domain.UserRole
	// RequireStoreMapping demands an active user↔store mapping on both send
	// and verify.
	RequireStoreMapping bool
}

var backofficeRoles = []domain.UserRole{
	domain.RoleAdmin,
	domain.RoleAccountManagement,
	domain.RoleFinance,
	domain.RoleITAdmin,
	domain.RoleMarketing,
	domain.RoleWarehouseOps,
	domain.RoleSecondaryDilution,
	domain.RoleCCExecutive,
	domain.RoleCCManager,
}

var surfacePolicies = map[LoginSurface]SurfacePolicy{
	SurfaceConsumer: {
		CreateRole: domain.RoleConsumer,
	},
	SurfaceAdmin: {
		SendRoles:   backofficeRoles,
		VerifyRoles: backofficeRoles,
	},
	SurfaceFos: {
		SendRoles: []domain.UserRole{
			domain.RoleAdmin,
			domain.RoleFosUser,
			domain.RoleAccountManagement,
			domain.RoleFosRider,
		},
	},
	SurfacePos: {
		SendRoles:           []domain.UserRole{domain.RoleStoreManager},
		VerifyRoles:         []domain.UserRole{domain.RoleStoreManager},
		RequireStoreMapping: true,
	},
	SurfaceIms: {
		SendRoles:   []domain.UserRole{domain.RoleCCExecutive, domain.RoleCCManager},
		VerifyRoles: []domain.UserRole{domain.RoleCCExecutive, domain.RoleCCManager},
	},
	SurfaceFranchise: {
		CreateRole: domain.RoleFranchiseOwner,
	},
}

// PolicyFor returns the authorization rule for a surface. Unknown surfaces
// get the consumer policy's shape with no creation, i.e. deny-by-absence.
func PolicyFor(surface LoginSurface) SurfacePolicy {
	return surfacePolicies[surface]
}

func roleSet(roles []domain.UserRole) map[domain.UserRole]struct{} {
	set := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// internalRoles marks back-office/internal role classes; a franchise login
// reports isOwner=false when the user carries any of these.
var internalRoles = roleSet(append([]domain.UserRole{
	domain.RoleInternal,
	domain.RoleIntegration,
	domain.RoleWarehouseAdmin,
	domain.RoleCoreTeam,
	domain.RoleFosUser,
	domain.RoleFosRider,
}, backofficeRoles...))
