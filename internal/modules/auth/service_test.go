package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/database"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/store"
	userdir "github.com/Monachawla1712/LivSorted-auth-service/internal/modules/user"
	jwtsvc "github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/jwt"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/repository"
)

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) GetVerifiedUserFromPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserDirectory) GetUserFromPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserDirectory) GetUserFromPhoneAndCheckRoles(ctx context.Context, phone string, allowed map[domain.UserRole]struct{}) (*domain.User, error) {
	args := m.Called(ctx, phone, allowed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserDirectory) GetOrCreateUserFromPhoneAndRole(ctx context.Context, phone string, role domain.UserRole, otpUserID *string) (*domain.User, error) {
	args := m.Called(ctx, phone, role, otpUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserDirectory) GetActiveUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserDirectory) SaveUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockStoreDirectory struct {
	mock.Mock
}

func (m *mockStoreDirectory) FindByUserID(ctx context.Context, userID string) ([]domain.UserStoreMapping, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserStoreMapping), args.Error(1)
}

func (m *mockStoreDirectory) RequireMapping(ctx context.Context, userID string) ([]domain.UserStoreMapping, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserStoreMapping), args.Error(1)
}

func (m *mockStoreDirectory) RequireNoMapping(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockStoreDirectory) Save(ctx context.Context, mapping *domain.UserStoreMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *mockStoreDirectory) GetStores(ctx context.Context, userID string) ([]store.WarehouseStore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.WarehouseStore), args.Error(1)
}

func (m *mockStoreDirectory) InactivateByStore(ctx context.Context, storeID string) ([]string, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) SendOtp(ctx context.Context, countryCode, phoneNumber, otp string) error {
	args := m.Called(ctx, countryCode, phoneNumber, otp)
	return args.Error(0)
}

func (m *mockGateway) VerifyFirebase(ctx context.Context, verificationID, otp string) (int, error) {
	args := m.Called(ctx, verificationID, otp)
	return args.Int(0), args.Error(1)
}

type serviceHarness struct {
	svc     *Service
	otp     *OtpStore
	users   *mockUserDirectory
	stores  *mockStoreDirectory
	gateway *mockGateway
	refresh *repository.RefreshTokenRepository
	signer  *jwtsvc.Service
	db      *gorm.DB
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.OtpToken{},
		&domain.RefreshToken{},
		&domain.UserStoreMapping{},
	))

	otpStore := NewOtpStore(repository.NewOtpTokenRepository(db), 4, 3, 5*time.Minute, false, func(string) bool {
		return false
	})
	refreshRepo := repository.NewRefreshTokenRepository(db)
	signer := jwtsvc.New("test-access-secret-32-characters", "test-refresh-secret-32-character", "auth-test", time.Hour, time.Hour)

	users := new(mockUserDirectory)
	stores := new(mockStoreDirectory)
	gateway := new(mockGateway)

	return &serviceHarness{
		svc:     NewService(otpStore, refreshRepo, users, stores, gateway, signer, db),
		otp:     otpStore,
		users:   users,
		stores:  stores,
		gateway: gateway,
		refresh: refreshRepo,
		signer:  signer,
		db:      db,
	}
}

func testUser(roles ...domain.UserRole) *domain.User {
	return &domain.User{
		ID:          uuid.NewString(),
		Name:        "Test User",
		PhoneNumber: "9000000001",
		Roles:       roles,
		IsActive:    true,
		IsVerified:  true,
	}
}

func TestSendOtpUnknownConsumerIsNewUser(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	h.users.On("GetVerifiedUserFromPhone", mock.Anything, "9000000001").Return(nil, nil)

	resp, err := h.svc.SendOtp(ctx, SurfaceConsumer, OtpRequest{CountryCode: "91", PhoneNumber: "9000000001"}, "")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.IsNewUser)

	// Development mode: the placeholder code is never dispatched.
	h.gateway.AssertNotCalled(t, "SendOtp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	row, err := h.otp.LastActive(ctx, "9000000001")
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "1234", row.Otp)
}

func TestSendOtpBlockedUser(t *testing.T) {
	h := newServiceHarness(t)

	blocked := testUser(domain.RoleVisitor, domain.RoleConsumer)
	blocked.IsBlocked = true
	h.users.On("GetVerifiedUserFromPhone", mock.Anything, "9000000001").Return(blocked, nil)

	_, err := h.svc.SendOtp(context.Background(), SurfaceConsumer, OtpRequest{CountryCode: "91", PhoneNumber: "9000000001"}, "")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestSendOtpRoleGatedSurfaceRejectsUnderprivileged(t *testing.T) {
	h := newServiceHarness(t)

	h.users.On("GetUserFromPhoneAndCheckRoles", mock.Anything, "9000000001", mock.Anything).
		Return(nil, userdir.ErrForbidden)

	_, err := h.svc.SendOtp(context.Background(), SurfaceAdmin, OtpRequest{CountryCode: "91", PhoneNumber: "9000000001"}, "")
	assert.ErrorIs(t, err, userdir.ErrForbidden)
}

func TestSendOtpFirebaseSessionStored(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	h.users.On("GetVerifiedUserFromPhone", mock.Anything, "9000000001").Return(nil, nil)

	req := OtpRequest{CountryCode: "91", PhoneNumber: "9000000001", VerificationID: "fb-abc"}
	_, err := h.svc.SendOtp(ctx, SurfaceConsumer, req, "")
	require.NoError(t, err)

	fed, err := h.otp.LastActiveFederated(ctx, "9000000001")
	require.NoError(t, err)
	require.NotNil(t, fed)
	assert.Equal(t, "fb-abc", *fed.VerificationID)
}

func TestVerifyOtpConsumerSuccess(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.otp.Issue(ctx, "9000000001", nil)
	require.NoError(t, err)

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	h.users.On("GetOrCreateUserFromPhoneAndRole", mock.Anything, "9000000001", domain.RoleConsumer, mock.Anything).
		Return(u, nil)

	resp, err := h.svc.VerifyOtp(ctx, SurfaceConsumer, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Nil(t, resp.IsOwner)

	// The refresh token is persisted and live.
	row, err := h.refresh.GetActive(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, u.ID, row.UserID)

	// The challenge is closed.
	left, err := h.otp.LastActive(ctx, "9000000001")
	require.NoError(t, err)
	assert.Nil(t, left)
}

func TestVerifyOtpWrongCode(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.otp.Issue(ctx, "9000000001", nil)
	require.NoError(t, err)

	_, err = h.svc.VerifyOtp(ctx, SurfaceConsumer, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "0000"})
	assert.ErrorIs(t, err, ErrOtpMismatch)
}

func TestVerifyOtpNoChallenge(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.svc.VerifyOtp(context.Background(), SurfaceConsumer, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "1234"})
	assert.ErrorIs(t, err, ErrOtpNotInUse)
}

func TestVerifyOtpBlockedUserGetsNoTokens(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.otp.Issue(ctx, "9000000001", nil)
	require.NoError(t, err)

	blocked := testUser(domain.RoleVisitor, domain.RoleConsumer)
	blocked.IsBlocked = true
	h.users.On("GetOrCreateUserFromPhoneAndRole", mock.Anything, "9000000001", domain.RoleConsumer, mock.Anything).
		Return(blocked, nil)

	_, err = h.svc.VerifyOtp(ctx, SurfaceConsumer, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "1234"})
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestVerifyOtpFirebasePath(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	require.NoError(t, h.otp.SaveFirebaseSession(ctx, "9000000001", "fb-abc", nil))

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	h.gateway.On("VerifyFirebase", mock.Anything, "fb-abc", "654321").Return(200, nil)
	h.users.On("GetOrCreateUserFromPhoneAndRole", mock.Anything, "9000000001", domain.RoleConsumer, mock.Anything).
		Return(u, nil)

	resp, err := h.svc.VerifyOtp(ctx, SurfaceConsumer, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "654321"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	fed, err := h.otp.LastActiveFederated(ctx, "9000000001")
	require.NoError(t, err)
	assert.Nil(t, fed)
}

func TestVerifyOtpFirebaseRejection(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	require.NoError(t, h.otp.SaveFirebaseSession(ctx, "9000000001", "fb-abc", nil))
	h.gateway.On("VerifyFirebase", mock.Anything, "fb-abc", "000000").Return(400, nil)

	_, err := h.svc.VerifyOtp(ctx, SurfaceConsumer, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "000000"})
	assert.ErrorIs(t, err, ErrOtpMismatch)
}

func TestVerifyOtpPosRequiresStoreMapping(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.otp.Issue(ctx, "9000000001", nil)
	require.NoError(t, err)

	u := testUser(domain.RoleVisitor, domain.RoleStoreManager)
	h.users.On("GetUserFromPhoneAndCheckRoles", mock.Anything, "9000000001", mock.Anything).Return(u, nil)
	h.stores.On("RequireMapping", mock.Anything, u.ID).
		Return([]domain.UserStoreMapping{{UserID: u.ID, StoreID: "store-1", IsActive: true}}, nil)

	resp, err := h.svc.VerifyOtp(ctx, SurfacePos, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	h.stores.AssertExpectations(t)
}

func TestVerifyOtpFranchiseSetsIsOwner(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.otp.Issue(ctx, "9000000001", nil)
	require.NoError(t, err)

	owner := testUser(domain.RoleVisitor, domain.RoleFranchiseOwner)
	h.users.On("GetUserFromPhone", mock.Anything, "9000000001").Return(owner, nil)

	resp, err := h.svc.VerifyOtp(ctx, SurfaceFranchise, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "1234"})
	require.NoError(t, err)
	require.NotNil(t, resp.IsOwner)
	assert.True(t, *resp.IsOwner)
}

func TestVerifyOtpFranchiseInternalUserIsNotOwner(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	_, err := h.otp.Issue(ctx, "9000000001", nil)
	require.NoError(t, err)

	fos := testUser(domain.RoleVisitor, domain.RoleFosUser)
	h.users.On("GetUserFromPhone", mock.Anything, "9000000001").Return(fos, nil)

	resp, err := h.svc.VerifyOtp(ctx, SurfaceFranchise, VerifyOtpRequest{PhoneNumber: "9000000001", Otp: "1234"})
	require.NoError(t, err)
	require.NotNil(t, resp.IsOwner)
	assert.False(t, *resp.IsOwner)
}

func TestUseRefreshTokenSuccess(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	pair, err := h.signer.Tokens(jwtsvc.Payload{UserID: u.ID, Roles: u.Roles})
	require.NoError(t, err)
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: pair.RefreshToken, UserID: u.ID}))

	h.users.On("GetActiveUserByID", mock.Anything, u.ID).Return(u, nil)

	resp, err := h.svc.UseRefreshToken(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, pair.RefreshToken, resp.RefreshToken, "refresh tokens are not rotated")
}

func TestUseRefreshTokenUnknownToken(t *testing.T) {
	h := newServiceHarness(t)

	_, err := h.svc.UseRefreshToken(context.Background(), RefreshTokenRequest{RefreshToken: "no-such-token"})
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestUseRefreshTokenBadSignatureRevokesRow(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: "not-a-jwt", UserID: "u-1"}))

	_, err := h.svc.UseRefreshToken(ctx, RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	row, err := h.refresh.GetActive(ctx, "not-a-jwt")
	require.NoError(t, err)
	assert.Nil(t, row, "the row burns on the failed attempt")
}

func TestUseRefreshTokenGoneUserRevokesRow(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	pair, err := h.signer.Tokens(jwtsvc.Payload{UserID: u.ID, Roles: u.Roles})
	require.NoError(t, err)
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: pair.RefreshToken, UserID: u.ID}))

	h.users.On("GetActiveUserByID", mock.Anything, u.ID).Return(nil, nil)

	_, err = h.svc.UseRefreshToken(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	row, err := h.refresh.GetActive(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestUseRefreshTokenBlockedUserRevokesRow(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	u.IsBlocked = true
	pair, err := h.signer.Tokens(jwtsvc.Payload{UserID: u.ID, Roles: u.Roles})
	require.NoError(t, err)
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: pair.RefreshToken, UserID: u.ID}))

	h.users.On("GetActiveUserByID", mock.Anything, u.ID).Return(u, nil)

	_, err = h.svc.UseRefreshToken(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrRefreshInvalid)

	row, err := h.refresh.GetActive(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestUseRefreshTokenRevokedTokenStaysDead(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	pair, err := h.signer.Tokens(jwtsvc.Payload{UserID: u.ID, Roles: u.Roles})
	require.NoError(t, err)
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: pair.RefreshToken, UserID: u.ID, Revoked: true}))

	_, err = h.svc.UseRefreshToken(ctx, RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, ErrRefreshInvalid)
}

func TestLogoutIsBestEffort(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: "tok-1", UserID: u.ID}))

	h.svc.Logout(ctx, u.ID, LogoutRequest{RefreshToken: "tok-1"})
	row, err := h.refresh.GetActive(ctx, "tok-1")
	require.NoError(t, err)
	assert.Nil(t, row)

	// Unknown token and empty token both succeed silently.
	h.svc.Logout(ctx, u.ID, LogoutRequest{RefreshToken: "never-issued"})
	h.svc.Logout(ctx, u.ID, LogoutRequest{})
}

func TestInactivateStoreSessionRevokesUserTokens(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: "tok-a", UserID: "u-1"}))
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: "tok-b", UserID: "u-2"}))
	require.NoError(t, h.refresh.Create(ctx, &domain.RefreshToken{Token: "tok-c", UserID: "u-3"}))

	h.stores.On("InactivateByStore", mock.Anything, "store-1").Return([]string{"u-1", "u-2"}, nil)

	require.NoError(t, h.svc.InactivateStoreSession(ctx, "store-1"))

	for _, tok := range []string{"tok-a", "tok-b"} {
		row, err := h.refresh.GetActive(ctx, tok)
		require.NoError(t, err)
		assert.Nil(t, row)
	}
	row, err := h.refresh.GetActive(ctx, "tok-c")
	require.NoError(t, err)
	assert.NotNil(t, row, "unrelated users keep their sessions")
}

func TestRegisterStore(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	h.users.On("GetVerifiedUserFromPhone", mock.Anything, "9000000001").Return(nil, nil)

	u, err := h.svc.RegisterStore(ctx, StoreRegistrationRequest{
		StoreID:     "store-1",
		CountryCode: "91",
		PhoneNumber: "9000000001",
		Name:        "New Owner",
	}, domain.RoleFranchiseOwner)
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	assert.Contains(t, u.Roles, domain.RoleFranchiseOwner)
	assert.True(t, u.IsVerified)

	var mappings []domain.UserStoreMapping
	require.NoError(t, h.db.Where("user_id = ?", u.ID).Find(&mappings).Error)
	require.Len(t, mappings, 1)
	assert.Equal(t, "store-1", mappings[0].StoreID)
	assert.True(t, mappings[0].IsActive)
}

func TestRegisterStoreDuplicate(t *testing.T) {
	h := newServiceHarness(t)

	existing := testUser(domain.RoleVisitor, domain.RoleFranchiseOwner)
	h.users.On("GetVerifiedUserFromPhone", mock.Anything, "9000000001").Return(existing, nil)

	_, err := h.svc.RegisterStore(context.Background(), StoreRegistrationRequest{
		StoreID:     "store-1",
		CountryCode: "91",
		PhoneNumber: "9000000001",
		Name:        "New Owner",
	}, domain.RoleFranchiseOwner)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterStoreManagerMapsExistingUser(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	existing := testUser(domain.RoleVisitor, domain.RoleStoreManager)
	h.users.On("GetOrCreateUserFromPhoneAndRole", mock.Anything, "9000000001", domain.RoleStoreManager, mock.Anything).Return(existing, nil)
	h.stores.On("RequireNoMapping", mock.Anything, existing.ID).Return(nil)
	h.stores.On("Save", mock.Anything, mock.MatchedBy(func(m *domain.UserStoreMapping) bool {
		return m.UserID == existing.ID && m.StoreID == "store-9"
	})).Return(nil)

	u, err := h.svc.RegisterStore(ctx, StoreRegistrationRequest{
		StoreID:     "store-9",
		CountryCode: "91",
		PhoneNumber: "9000000001",
		Name:        "Manager",
	}, domain.RoleStoreManager)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, u.ID)
	h.stores.AssertExpectations(t)
}

func TestRegisterStoreManagerRejectsSecondMapping(t *testing.T) {
	h := newServiceHarness(t)

	existing := testUser(domain.RoleVisitor, domain.RoleStoreManager)
	h.users.On("GetOrCreateUserFromPhoneAndRole", mock.Anything, "9000000001", domain.RoleStoreManager, mock.Anything).Return(existing, nil)
	h.stores.On("RequireNoMapping", mock.Anything, existing.ID).Return(store.ErrAlreadyMapped)

	_, err := h.svc.RegisterStore(context.Background(), StoreRegistrationRequest{
		StoreID:     "store-10",
		CountryCode: "91",
		PhoneNumber: "9000000001",
		Name:        "Manager",
	}, domain.RoleStoreManager)
	assert.ErrorIs(t, err, store.ErrAlreadyMapped)
	h.stores.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetStores(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	want := []store.WarehouseStore{{ID: 7, Name: "Sector 18", Status: "OPEN"}}
	h.stores.On("GetStores", mock.Anything, "user-7").Return(want, nil)

	got, err := h.svc.GetStores(ctx, "user-7")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVerifyUnverifiedUser(t *testing.T) {
	h := newServiceHarness(t)
	ctx := context.Background()

	u := testUser(domain.RoleVisitor, domain.RoleConsumer)
	h.users.On("GetActiveUserByID", mock.Anything, u.ID).Return(u, nil)

	resp, err := h.svc.VerifyUnverifiedUser(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	h.users.On("GetActiveUserByID", mock.Anything, "missing").Return(nil, nil)
	_, err = h.svc.VerifyUnverifiedUser(ctx, "missing")
	assert.ErrorIs(t, err, userdir.ErrNotFound)
}
