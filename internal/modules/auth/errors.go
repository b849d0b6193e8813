package auth

import "errors"

var (
	ErrOtpNotInUse      = errors.New("otp not in use")
	ErrOtpExpired       = errors.New("otp has expired")
	ErrRetriesExceeded  = errors.New("otp retry count exceeded")
	ErrOtpMismatch      = errors.New("otp does not match")
	ErrUserBlocked      = errors.New("user is blocked")
	ErrRefreshInvalid   = errors.New("refresh token is invalid")
	ErrAlreadyRegistered = errors.New("user is already registered")
	ErrSmsSend          = errors.New("error while sending otp")
)
