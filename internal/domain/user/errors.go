package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoRoleHolder = errors.New("no active user holds the requested role")
)
