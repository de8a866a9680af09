// Package repository contains the MySQL data access layer. Sentinel errors
// shared across repositories live here so handlers can map failures onto
// HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is already
// taken. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as deleting another faculty member's note.
// Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")
