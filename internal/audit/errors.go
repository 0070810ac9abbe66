package audit

import (
	"errors"

	"carbon-shop/marketplace-backend/internal/store"
)

var (
	// ErrNotFound is returned when the referenced entity id does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrValidation is returned when a payload violates a declared constraint.
	ErrValidation = errors.New("validation failed")
	// ErrUnknownTrigger means the trigger table has no entry for a (kind, action).
	ErrUnknownTrigger = errors.New("unknown audit trigger")
)
