package angle

import (
	"fmt"
	"sync"

	"github.com/gogpu/angle/egl"
)

// displayAttributeTiers are the ANGLE display attribute sets tried in
// order during bring-up:
//
//  1. D3D11 at full feature level. Initialization only succeeds here when
//     the hardware supports feature level 10_0 or better. Automatic trim
//     lets ANGLE call IDXGIDevice3::Trim when the process is suspended,
//     and the experimental fast present path renders directly on the D3D
//     swapchain in the correct orientation.
//  2. D3D11 capped at feature level 9_3, for older hardware.
//  3. D3D11 WARP, the software rasterizer fallback.
//
// Failures before the final tier are expected and stay silent.
var displayAttributeTiers = [][]egl.Int{
	{
		egl.PlatformANGLEType, egl.PlatformANGLETypeD3D11,
		egl.PlatformANGLEEnableAutomaticTrim, egl.True,
		egl.ExperimentalPresentPathANGLE, egl.ExperimentalPresentPathFastANGLE,
		egl.None,
	},
	{
		egl.PlatformANGLEType, egl.PlatformANGLETypeD3D11,
		egl.PlatformANGLEMaxVersionMajor, 9,
		egl.PlatformANGLEMaxVersionMinor, 3,
		egl.PlatformANGLEEnableAutomaticTrim, egl.True,
		egl.None,
	},
	{
		egl.PlatformANGLEType, egl.PlatformANGLETypeD3D11,
		egl.PlatformANGLEEnableAutomaticTrim, egl.True,
		egl.None,
	},
}

// displayRef is one initialized shared display plus its live-manager count.
type displayRef struct {
	display egl.Display
	refs    int
}

// displays tracks the shared display per EGL binding. The display is a
// process-wide resource: every manager built on the same API shares one
// initialized display, and only the release that drops the count to zero
// terminates it.
var (
	displaysMu sync.Mutex
	displays   = make(map[egl.API]*displayRef)
)

// acquireDisplay returns the shared display for api, initializing it on
// first acquisition via the tiered capability fallback. Each successful
// call must be paired with a releaseDisplay.
func acquireDisplay(api egl.API) (egl.Display, error) {
	displaysMu.Lock()
	defer displaysMu.Unlock()

	if ref, ok := displays[api]; ok {
		ref.refs++
		return ref.display, nil
	}

	display, err := initDisplay(api)
	if err != nil {
		return egl.NoDisplay, err
	}
	displays[api] = &displayRef{display: display, refs: 1}
	return display, nil
}

// releaseDisplay drops one reference on api's shared display and
// terminates the display when the last reference goes away. Termination
// failure is logged, never escalated.
func releaseDisplay(api egl.API) {
	displaysMu.Lock()
	defer displaysMu.Unlock()

	ref, ok := displays[api]
	if !ok {
		return
	}
	ref.refs--
	if ref.refs > 0 {
		return
	}
	delete(displays, api)
	if err := api.Terminate(ref.display); err != nil {
		logEGL("terminating display", err)
	}
}

// initDisplay walks the capability tiers until one yields an initialized
// display. Only the final tier is permitted to log: earlier failures are
// the expected outcome on hardware lacking the top tier.
func initDisplay(api egl.API) (egl.Display, error) {
	var lastErr error
	for i, attribs := range displayAttributeTiers {
		final := i == len(displayAttributeTiers)-1

		display, err := api.PlatformDisplay(egl.PlatformANGLE, egl.DefaultDisplay, attribs)
		if err != nil {
			if final {
				logEGL("getting a compatible EGL display", err)
			}
			lastErr = err
			continue
		}

		if err := api.Initialize(display); err != nil {
			if final {
				logEGL("initializing EGL via ANGLE", err)
			}
			lastErr = err
			continue
		}

		return display, nil
	}
	return egl.NoDisplay, fmt.Errorf("%w: %w", ErrNoDisplay, lastErr)
}
