package services

import "errors"

var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrInvalidPost    = errors.New("invalid post")
	// ErrOwnerRequired is returned when a post set carries no owner.
	ErrOwnerRequired = errors.New("owner email is required")
	ErrMixedOwners   = errors.New("posts belong to more than one owner")
)
