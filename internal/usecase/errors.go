package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrStorageUnavailable    = errors.New("storage unavailable")
)

// ErrLeagueNotFound is the batch error message for ids missing from the registry.
const ErrLeagueNotFound = "league not found"
