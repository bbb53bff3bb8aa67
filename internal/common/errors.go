package common

import "errors"

// Sentinel errors returned by services. Handlers map them onto the
// corresponding HTTP status at the boundary; everything else is a 500.
var (
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrCheckoutFailed = errors.New("checkout failed")
)
