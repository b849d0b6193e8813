package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
)

// OtpStore generates, stores, validates and expires one-time codes per phone
// number, plus the parallel Firebase verification-session path.
type OtpStore struct {
	repo OtpRepository

	digits         int
	retriesAllowed int
	validity       time.Duration

	// Deterministic codes: non-production environments and whitelisted
	// phones never get a random code or a real SMS.
	production  bool
	whitelisted func(phone string) bool

	now func() time.Time
}

func NewOtpStore(repo OtpRepository, digits, retriesAllowed int, validity time.Duration, production bool, whitelisted func(string) bool) *OtpStore {
	return &OtpStore{
		repo:           repo,
		digits:         digits,
		retriesAllowed: retriesAllowed,
		validity:       validity,
		production:     production,
		whitelisted:    whitelisted,
		now:            time.Now,
	}
}

// PlaceholderCode is the deterministic code for whitelisted/non-production
// flows: "1234" for 4 digits, "123456" for 6.
func (s *OtpStore) PlaceholderCode() string {
	var b strings.Builder
	for i := 1; i <= s.digits; i++ {
		b.WriteString(strconv.Itoa(i % 10))
	}
	return b.String()
}

func (s *OtpStore) randomCode() (string, error) {
	var b strings.Builder
	for i := 0; i < s.digits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(n.String())
	}
	return b.String(), nil
}

// UsesRealCode reports whether this phone gets a random code and an SMS.
func (s *OtpStore) UsesRealCode(phone string) bool {
	return s.production && !s.whitelisted(phone)
}

// Issue deactivates stale challenges for the phone and returns the code the
// caller should dispatch. An active unexpired row is reused (its code stands,
// its deadline extends, its retry counter bumps); a reused row with exhausted
// retries fails issuance outright.
func (s *OtpStore) Issue(ctx context.Context, phone string, userID *string) (string, error) {
	now := s.now()
	if err := s.repo.DeactivateExpired(ctx, phone, now); err != nil {
		return "", err
	}
	if err := s.repo.DeactivateFederated(ctx, phone); err != nil {
		return "", err
	}

	code := s.PlaceholderCode()
	if s.UsesRealCode(phone) {
		var err error
		if code, err = s.randomCode(); err != nil {
			return "", err
		}
	}
	validTill := now.Add(s.validity)

	existing, err := s.repo.ActiveUnexpiredByPhone(ctx, phone, now)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return code, s.repo.Create(ctx, &domain.OtpToken{
			PhoneNumber:      phone,
			Otp:              code,
			VerificationType: domain.VerificationGupshup,
			UserID:           userID,
			ValidTill:        validTill,
			RetriesCount:     0,
			RetriesAllowed:   s.retriesAllowed,
			IsActive:         true,
		})
	}
	if existing.RetriesExhausted() {
		return "", ErrRetriesExceeded
	}
	// Reuse: the already-delivered code stays valid so a duplicate send does
	// not invalidate the SMS in flight.
	existing.RetriesCount++
	existing.ValidTill = validTill
	if err := s.repo.Save(ctx, existing); err != nil {
		return "", err
	}
	return existing.Otp, nil
}

// SaveFirebaseSession records a federated verification session instead of a
// local code. All prior active challenges for the phone are closed first.
func (s *OtpStore) SaveFirebaseSession(ctx context.Context, phone, verificationID string, userID *string) error {
	if err := s.repo.DeactivateAllActive(ctx, phone); err != nil {
		return err
	}
	return s.repo.Create(ctx, &domain.OtpToken{
		PhoneNumber:      phone,
		VerificationType: domain.VerificationFirebase,
		VerificationID:   &verificationID,
		UserID:           userID,
		ValidTill:        s.now().Add(s.validity),
		RetriesCount:     0,
		RetriesAllowed:   s.retriesAllowed,
		IsActive:         true,
	})
}

// Validate checks a submitted code against an OTP row. Expiry deactivates the
// row; a mismatch burns one retry. On success the row stays active until the
// caller soft-deletes it, so user resolution can happen in between.
func (s *OtpStore) Validate(ctx context.Context, token *domain.OtpToken, submitted string) error {
	if token == nil {
		return ErrOtpNotInUse
	}
	if token.IsExpired(s.now()) {
		token.IsActive = false
		if err := s.repo.Save(ctx, token); err != nil {
			return err
		}
		return ErrOtpExpired
	}
	if token.RetriesExhausted() {
		return ErrRetriesExceeded
	}
	if token.Otp != submitted {
		token.RetriesCount++
		if err := s.repo.Save(ctx, token); err != nil {
			return err
		}
		return ErrOtpMismatch
	}
	return nil
}

// SoftDelete closes a validated challenge; idempotent.
func (s *OtpStore) SoftDelete(ctx context.Context, token *domain.OtpToken) error {
	if token == nil || !token.IsActive {
		return nil
	}
	token.IsActive = false
	return s.repo.Save(ctx, token)
}

func (s *OtpStore) LastActive(ctx context.Context, phone string) (*domain.OtpToken, error) {
	return s.repo.LastActiveByPhone(ctx, phone)
}

func (s *OtpStore) LastActiveFederated(ctx context.Context, phone string) (*domain.OtpToken, error) {
	return s.repo.LastActiveFederatedByPhone(ctx, phone)
}
