package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrNoAuthenticatedUser   = errors.New("no authenticated user")
	ErrManagerAccessRequired = errors.New("manager or founder access required")
	ErrFounderAccessRequired = errors.New("founder access required")
)
