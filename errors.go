package angle

import "errors"

// Common errors returned by SurfaceManager operations.
var (
	// ErrNoDisplay is returned when no capability tier yields a usable
	// EGL display.
	ErrNoDisplay = errors.New("angle: no compatible EGL display")

	// ErrNoDevice is returned when the Direct3D device behind the EGL
	// display cannot be resolved (a device-query extension is missing or
	// the queries fail).
	ErrNoDevice = errors.New("angle: Direct3D 11 device unavailable")

	// ErrManagerDestroyed is returned when operations are attempted on a
	// destroyed SurfaceManager.
	ErrManagerDestroyed = errors.New("angle: surface manager destroyed")
)
