package user

import "errors"

var (
	ErrPhoneNotRegistered = errors.New("this phone number is not registered")
	ErrForbidden          = errors.New("forbidden access")
	ErrNotFound           = errors.New("no user found")
)
