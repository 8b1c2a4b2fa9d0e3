package api

import "errors"

// ErrBadRequest is the kind for requests rejected before reaching the
// matching service.
var ErrBadRequest = errors.New("bad request")
