package shared

import (
	"errors"

	"github.com/vestiaire-fc/vestiaire/internal/platform/httpx"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserSafeMessage returns an error message suitable for end users. Internal
// failures are collapsed into a generic message.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound), errors.Is(err, httpx.ErrNotFound):
		return "The requested record does not exist"
	case errors.Is(err, httpx.ErrDuplicate):
		return "A matching record already exists"
	case errors.Is(err, httpx.ErrValidation):
		return err.Error()
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	default:
		return "Something went wrong, please try again"
	}
}
