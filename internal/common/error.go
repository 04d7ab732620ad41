package common

import "errors"

// ErrNotAuthenticated is returned by operations that need an
// authenticated session when none is established.
var ErrNotAuthenticated = errors.New("not authenticated")
