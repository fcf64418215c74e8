package bridge

import "errors"

// Construction errors. Any of these aborts bridge construction; a bridge is
// never handed out half-initialized.
var (
	ErrNilPlatformEndpoint  = errors.New("platform endpoint is nil")
	ErrNilRegistrar         = errors.New("capability registrar is nil")
	ErrNilAgentFactory      = errors.New("capability agent factory is nil")
	ErrInvalidConfiguration = errors.New("invalid equalizer configuration")
)
