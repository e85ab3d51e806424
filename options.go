package angle

import (
	"github.com/gogpu/angle/d3d11"
	"github.com/gogpu/angle/egl"
)

// Option configures a SurfaceManager during creation.
// Use functional options to customize manager behavior.
//
// Example:
//
//	// Default: the platform's libEGL runtime.
//	m, err := angle.New()
//
//	// Injected backend (testing, alternative runtimes):
//	m, err := angle.New(angle.WithAPI(fake))
type Option func(*managerOptions)

// managerOptions holds optional configuration for manager creation.
type managerOptions struct {
	api         egl.API
	adoptDevice func(uintptr) (d3d11.Device, error)
	onPresent   PresentCallback
}

// defaultOptions returns the default manager options.
func defaultOptions() managerOptions {
	return managerOptions{
		adoptDevice: d3d11.FromNative,
	}
}

// WithAPI sets the EGL binding the manager calls into. The default is
// egl.Default(), the platform's ANGLE runtime. Use this for dependency
// injection of fakes or alternative EGL implementations.
func WithAPI(api egl.API) Option {
	return func(o *managerOptions) {
		o.api = api
	}
}

// WithDeviceAdopter sets the function that adopts the raw ID3D11Device
// pointer resolved from the EGL display. The default is d3d11.FromNative.
// Tests substitute an adopter returning a fake device.
func WithDeviceAdopter(adopt func(ptr uintptr) (d3d11.Device, error)) Option {
	return func(o *managerOptions) {
		if adopt != nil {
			o.adoptDevice = adopt
		}
	}
}

// WithPresentCallback registers the frame-handoff callback at creation
// time. Equivalent to calling SetPresentCallback on the new manager.
func WithPresentCallback(cb PresentCallback) Option {
	return func(o *managerOptions) {
		o.onPresent = cb
	}
}
