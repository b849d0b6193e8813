package auth

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/store"
	userdir "github.com/Monachawla1712/LivSorted-auth-service/internal/modules/user"
	jwtsvc "github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/jwt"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/trace"
)

// Service is the authentication orchestrator: it ties the OTP store, the
// notification gateway, the user directory and the token signer together for
// every login surface.
type Service struct {
	otp      *OtpStore
	refresh  RefreshRepository
	users    UserDirectory
	stores   StoreDirectory
	gateway  NotificationGateway
	signer   TokenSigner
	db       *gorm.DB // store registration runs in an explicit transaction
}

func NewService(
	otp *OtpStore,
	refresh RefreshRepository,
	users UserDirectory,
	stores StoreDirectory,
	gateway NotificationGateway,
	signer TokenSigner,
	db *gorm.DB,
) *Service {
	return &Service{
		otp:     otp,
		refresh: refresh,
		users:   users,
		stores:  stores,
		gateway: gateway,
		signer:  signer,
		db:      db,
	}
}

func (s *Service) checkBlocked(u *domain.User) error {
	if u != nil && u.IsBlocked {
		return ErrUserBlocked
	}
	return nil
}

// SendOtp runs the send-challenge flow for a surface. For the consumer
// surface an unknown phone is fine (the user is created at verify time);
// role-gated surfaces reject unknown or under-privileged phones up front.
func (s *Service) SendOtp(ctx context.Context, surface LoginSurface, req OtpRequest, headerUserID string) (*OtpResponse, error) {
	policy := PolicyFor(surface)

	var u *domain.User
	var err error
	if len(policy.SendRoles) > 0 {
		u, err = s.users.GetUserFromPhoneAndCheckRoles(ctx, req.PhoneNumber, roleSet(policy.SendRoles))
		if err != nil {
			return nil, err
		}
	} else {
		u, err = s.users.GetVerifiedUserFromPhone(ctx, req.PhoneNumber)
		if err != nil {
			return nil, err
		}
	}
	if err := s.checkBlocked(u); err != nil {
		return nil, err
	}
	if policy.RequireStoreMapping && u != nil {
		if _, err := s.stores.RequireMapping(ctx, u.ID); err != nil {
			return nil, err
		}
	}

	otpUserID := userIDOrHeader(u, headerUserID)

	if req.VerificationID != "" {
		if err := s.otp.SaveFirebaseSession(ctx, req.PhoneNumber, req.VerificationID, otpUserID); err != nil {
			return nil, err
		}
	} else if err := s.generateAndSendOtp(ctx, req, otpUserID); err != nil {
		return nil, err
	}

	return otpResponse(u, len(policy.SendRoles) == 0), nil
}

func (s *Service) generateAndSendOtp(ctx context.Context, req OtpRequest, otpUserID *string) error {
	code, err := s.otp.Issue(ctx, req.PhoneNumber, otpUserID)
	if err != nil {
		return err
	}
	if !s.otp.UsesRealCode(req.PhoneNumber) {
		return nil
	}
	if err := s.gateway.SendOtp(ctx, req.CountryCode, req.PhoneNumber, code); err != nil {
		log.Printf("otp_send trace_id=%s phone=%s error=%q", trace.ID(ctx), req.PhoneNumber, err.Error())
		return ErrSmsSend
	}
	log.Printf("otp_send trace_id=%s phone=%s", trace.ID(ctx), req.PhoneNumber)
	return nil
}

// VerifyOtp runs the verify-challenge flow. A live Firebase session takes
// priority over a local code; otherwise the last active OTP is validated and
// the user resolved under the surface policy.
func (s *Service) VerifyOtp(ctx context.Context, surface LoginSurface, req VerifyOtpRequest) (*LoginResponse, error) {
	policy := PolicyFor(surface)

	if policy.CreateRole == domain.RoleConsumer {
		federated, err := s.otp.LastActiveFederated(ctx, req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if federated != nil && federated.VerificationID != nil {
			return s.verifyFirebase(ctx, federated, req)
		}
	}

	token, err := s.otp.LastActive(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if err := s.otp.Validate(ctx, token, req.Otp); err != nil {
		return nil, err
	}
	if err := s.otp.SoftDelete(ctx, token); err != nil {
		return nil, err
	}

	u, err := s.resolveVerifiedUser(ctx, surface, policy, req.PhoneNumber, token.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBlocked(u); err != nil {
		return nil, err
	}
	if policy.RequireStoreMapping {
		if _, err := s.stores.RequireMapping(ctx, u.ID); err != nil {
			return nil, err
		}
	}

	resp, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, err
	}
	if surface == SurfaceFranchise {
		isOwner := !u.HasAnyRole(internalRoles)
		resp.IsOwner = &isOwner
	}
	return resp, nil
}

func (s *Service) resolveVerifiedUser(ctx context.Context, surface LoginSurface, policy SurfacePolicy, phone string, otpUserID *string) (*domain.User, error) {
	switch {
	case surface == SurfaceFranchise:
		return s.resolveFranchiseUser(ctx, phone, otpUserID)
	case policy.CreateRole != "":
		return s.users.GetOrCreateUserFromPhoneAndRole(ctx, phone, policy.CreateRole, otpUserID)
	case len(policy.VerifyRoles) > 0:
		return s.users.GetUserFromPhoneAndCheckRoles(ctx, phone, roleSet(policy.VerifyRoles))
	default:
		// fos-style surfaces: the phone must already exist.
		u, err := s.users.GetUserFromPhone(ctx, phone)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, userdir.ErrPhoneNotRegistered
		}
		return u, nil
	}
}

// resolveFranchiseUser grants FRANCHISEOWNER to a fresh or existing user,
// leaving field-ops accounts untouched.
func (s *Service) resolveFranchiseUser(ctx context.Context, phone string, otpUserID *string) (*domain.User, error) {
	u, err := s.users.GetUserFromPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return s.users.GetOrCreateUserFromPhoneAndRole(ctx, phone, domain.RoleFranchiseOwner, otpUserID)
	}
	save := false
	if !u.HasRole(domain.RoleFosUser) && !u.HasRole(domain.RoleFranchiseOwner) {
		u.Roles = append(u.Roles, domain.RoleFranchiseOwner)
		save = true
	} else if !u.IsVerified {
		u.IsVerified = true
		save = true
	}
	if save {
		return s.users.SaveUser(ctx, u)
	}
	return u, nil
}

func (s *Service) verifyFirebase(ctx context.Context, token *domain.OtpToken, req VerifyOtpRequest) (*LoginResponse, error) {
	status, err := s.gateway.VerifyFirebase(ctx, *token.VerificationID, req.Otp)
	if err != nil {
		log.Printf("firebase_verify trace_id=%s phone=%s error=%q", trace.ID(ctx), req.PhoneNumber, err.Error())
		return nil, ErrOtpMismatch
	}
	if status != 200 {
		return nil, ErrOtpMismatch
	}
	if err := s.otp.SoftDelete(ctx, token); err != nil {
		return nil, err
	}
	u, err := s.users.GetOrCreateUserFromPhoneAndRole(ctx, req.PhoneNumber, domain.RoleConsumer, token.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.checkBlocked(u); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, u)
}

// issueTokens signs the access+refresh pair and persists the refresh token.
func (s *Service) issueTokens(ctx context.Context, u *domain.User) (*LoginResponse, error) {
	pair, err := s.signer.Tokens(jwtsvc.Payload{UserID: u.ID, Roles: u.Roles})
	if err != nil {
		return nil, err
	}
	err = s.refresh.Create(ctx, &domain.RefreshToken{
		Token:  pair.RefreshToken,
		UserID: u.ID,
	})
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         u,
	}, nil
}

// VerifyUnverifiedUser issues tokens for an already-known user id with no OTP
// round-trip; used by onboarding flows that pre-create users.
func (s *Service) VerifyUnverifiedUser(ctx context.Context, userID string) (*LoginResponse, error) {
	u, err := s.users.GetActiveUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, userdir.ErrNotFound
	}
	return s.issueTokens(ctx, u)
}

// UseRefreshToken exchanges a live refresh token for a fresh access token.
// Fail-closed: once the row is located, any failure burns it before the error
// surfaces, so an anomalous token can never be retried into a session.
func (s *Service) UseRefreshToken(ctx context.Context, req RefreshTokenRequest) (*LoginResponse, error) {
	row, err := s.refresh.GetActive(ctx, req.RefreshToken)

	fail := func(cause error) (*LoginResponse, error) {
		if row != nil {
			row.Revoked = true
			if saveErr := s.refresh.Save(ctx, row); saveErr != nil {
				log.Printf("refresh_revoke trace_id=%s error=%q", trace.ID(ctx), saveErr.Error())
			}
		}
		log.Printf("refresh_use trace_id=%s error=%q", trace.ID(ctx), cause.Error())
		return nil, ErrRefreshInvalid
	}

	if err != nil {
		return fail(err)
	}
	if row == nil {
		return fail(ErrRefreshInvalid)
	}
	if _, err := s.signer.Verify(req.RefreshToken, jwtsvc.ClassRefresh); err != nil {
		return fail(err)
	}
	u, err := s.users.GetActiveUserByID(ctx, row.UserID)
	if err != nil {
		return fail(err)
	}
	if u == nil {
		return fail(userdir.ErrNotFound)
	}
	if err := s.checkBlocked(u); err != nil {
		return fail(err)
	}

	access, err := s.signer.Sign(jwtsvc.Payload{UserID: u.ID, Roles: u.Roles}, jwtsvc.ClassAccess)
	if err != nil {
		return fail(err)
	}
	// Refresh tokens are not rotated on use: the same refresh token rides on.
	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: req.RefreshToken,
		User:         u,
	}, nil
}

// Logout revokes one refresh token for the calling user. Best-effort: a
// failed delete is logged and the client still gets success.
func (s *Service) Logout(ctx context.Context, userID string, req LogoutRequest) {
	if req.RefreshToken == "" {
		return
	}
	if err := s.refresh.DeleteByTokenAndUser(ctx, req.RefreshToken, userID); err != nil {
		log.Printf("logout trace_id=%s user_id=%s error=%q", trace.ID(ctx), userID, err.Error())
	}
}

// InactivateStoreSession force-ends every session derived from a store: the
// store's user mappings are deactivated and all their refresh tokens revoked.
func (s *Service) InactivateStoreSession(ctx context.Context, storeID string) error {
	userIDs, err := s.stores.InactivateByStore(ctx, storeID)
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	if err := s.refresh.RevokeAllForUsers(ctx, userIDs); err != nil {
		log.Printf("store_session_inactivate trace_id=%s store_id=%s error=%q", trace.ID(ctx), storeID, err.Error())
		return err
	}
	return nil
}

// RegisterStore provisions a store login. The franchise surface creates a
// brand new owner and rejects phones that are already registered; the POS
// surface resolves or creates the manager and rejects only a second store
// mapping for the same user.
func (s *Service) RegisterStore(ctx context.Context, req StoreRegistrationRequest, role domain.UserRole) (*domain.User, error) {
	if role == domain.RoleStoreManager {
		return s.registerStoreManager(ctx, req)
	}

	existing, err := s.users.GetVerifiedUserFromPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	u := &domain.User{
		ID:          uuid.NewString(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		Roles:       []domain.UserRole{domain.RoleVisitor, role},
		IsActive:    true,
		IsVerified:  true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		return tx.Create(&domain.UserStoreMapping{
			UserID:   u.ID,
			StoreID:  req.StoreID,
			IsActive: true,
		}).Error
	})
	if err != nil {
		log.Printf("store_register trace_id=%s phone=%s error=%q", trace.ID(ctx), req.PhoneNumber, err.Error())
		return nil, err
	}
	return u, nil
}

// registerStoreManager maps a manager to a store. An existing verified user
// keeps their account and just gains the STOREMANAGER role and the mapping.
func (s *Service) registerStoreManager(ctx context.Context, req StoreRegistrationRequest) (*domain.User, error) {
	u, err := s.users.GetOrCreateUserFromPhoneAndRole(ctx, req.PhoneNumber, domain.RoleStoreManager, nil)
	if err != nil {
		return nil, err
	}
	if u.Name == "" && req.Name != "" {
		u.Name = req.Name
		if u, err = s.users.SaveUser(ctx, u); err != nil {
			return nil, err
		}
	}
	if err := s.stores.RequireNoMapping(ctx, u.ID); err != nil {
		return nil, err
	}
	if err := s.stores.Save(ctx, &domain.UserStoreMapping{
		UserID:  u.ID,
		StoreID: req.StoreID,
	}); err != nil {
		log.Printf("store_register trace_id=%s phone=%s error=%q", trace.ID(ctx), req.PhoneNumber, err.Error())
		return nil, err
	}
	return u, nil
}

// GetStores returns warehouse detail for every store mapped to the user.
func (s *Service) GetStores(ctx context.Context, userID string) ([]store.WarehouseStore, error) {
	return s.stores.GetStores(ctx, userID)
}

func userIDOrHeader(u *domain.User, headerUserID string) *string {
	if u != nil && u.ID != "" {
		id := u.ID
		return &id
	}
	if headerUserID != "" {
		return &headerUserID
	}
	return nil
}

func otpResponse(u *domain.User, exposeNewUser bool) *OtpResponse {
	resp := &OtpResponse{
		Success:   true,
		Message:   "otp sent successfully",
		IsNewUser: false,
	}
	if u != nil {
		resp.Name = strPtr(u.Name)
		resp.Greeting = strPtr(u.Greeting)
		resp.GreetingSuffix = strPtr(u.GreetingSuffix)
	}
	if exposeNewUser {
		resp.IsNewUser = u.IsNew()
	}
	return resp
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
