package access

import "errors"

// Domain errors
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrBrandAccessDenied = errors.New("brand access denied")
	ErrRoleDenied        = errors.New("role denied")
	ErrOwnershipDenied   = errors.New("ownership denied")
)
