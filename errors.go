package ambient

import "errors"

var (
	ErrStopped       = errors.New("ambient: engine stopped")
	ErrNoHardware    = errors.New("ambient: no hardware factory configured")
	ErrTargetInUse   = errors.New("ambient: render target owned by another mode")
	ErrUnknownPreset = errors.New("ambient: unknown preset")
	ErrInvalidConfig = errors.New("ambient: invalid config")
)
