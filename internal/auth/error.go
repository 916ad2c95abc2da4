package auth

import "errors"

var (
	ErrMissingSecret      = errors.New("jwt secret is not set")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotAdmin           = errors.New("token does not carry the admin role")
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrAdminDisabled      = errors.New("admin access is not configured")
)
