package models

import "errors"

// ErrInvalidInput indicates a malformed or missing value: empty name,
// non-positive amount, or a missing/unknown cereal selection.
var ErrInvalidInput = errors.New("invalid input")

// ErrNotFound indicates the referenced silo does not exist.
var ErrNotFound = errors.New("silo not found")

// ErrDuplicateName indicates the unique silo name constraint was violated.
var ErrDuplicateName = errors.New("silo name already in use")

// ErrCerealMismatch indicates an attempt to load a cereal different from
// the one the silo is committed to.
var ErrCerealMismatch = errors.New("silo committed to a different cereal")

// ErrInsufficientStock indicates an unload that would drive the balance
// negative.
var ErrInsufficientStock = errors.New("insufficient stock in silo")
