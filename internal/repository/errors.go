// Package repository provides data access for the user directory and
// refresh tokens.  Sentinel errors let handlers distinguish failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when a signup collides with an existing
// email address.  Handlers should translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a lookup by email or id yields no
// active user.
var ErrUserNotFound = errors.New("user not found")
