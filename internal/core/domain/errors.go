package domain

import "errors"

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrContextRestriction = errors.New("command is only available in a server")
	ErrDataCorruption     = errors.New("stored document is corrupted")
)
