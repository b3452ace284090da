package repository

import "errors"

// ErrStorageUnavailable is returned when the database cannot be opened or
// its schema cannot be created. Callers respond with 503 rather than crash.
var ErrStorageUnavailable = errors.New("storage unavailable")
