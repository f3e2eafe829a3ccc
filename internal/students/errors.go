package students

import (
	"errors"
	"fmt"

	"academixstore-admin/internal/api"
)

var (
	// ErrAccessDenied is returned when the role gate rejects a mutation.
	ErrAccessDenied = errors.New(msgAccessDenied)

	errMissingPayload = errors.New("response has no data object")
)

// MutationError carries the user-facing message of one failed mutation.
type MutationError struct {
	Op      string
	Message string
	Err     error
}

func (e *MutationError) Error() string {
	return e.Message
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

func errNotSuccessful(resp *api.Response) error {
	return fmt.Errorf("request not successful: %s", resp.MessageOr("no message"))
}
