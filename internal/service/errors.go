package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/gantry/internal/repository"
)

// Error kinds surfaced to callers. Repositories contribute
// repository.ErrNotFound for absent entities; everything else wraps one of
// these sentinels. Callers test with errors.Is.
var (
	// ErrForbidden marks an ownership or board mismatch on the entity itself.
	ErrForbidden = errors.New("forbidden")

	// ErrScopeMismatch marks a referenced column or sprint that does not
	// belong to the claimed board. Never silently corrected.
	ErrScopeMismatch = errors.New("scope mismatch")

	// ErrConflict marks duplicate scope keys and invalid state transitions.
	ErrConflict = errors.New("conflict")
)

func errScopeMismatch(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrScopeMismatch)...)
}

func errConflict(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

func errForbidden(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrForbidden)...)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
