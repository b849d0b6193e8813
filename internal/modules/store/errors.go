package store

import "errors"

var (
	ErrNotMapped     = errors.New("user is not mapped to a store")
	ErrAlreadyMapped = errors.New("user is already mapped to a store")
	ErrWarehouse     = errors.New("something went wrong while fetching data from warehouse")
)
