package angle

// Target selects where a surface draws. It is a closed sum over the two
// kinds the manager supports, making the windowed and off-screen code
// paths exhaustive instead of hiding them behind a nullable handle.
type Target interface {
	isTarget()
}

// Offscreen requests a surface backed by a shareable Direct3D texture
// instead of a native window. Frames presented to an off-screen surface
// are handed to the registered present callback as a DXGI shared handle.
type Offscreen struct{}

func (Offscreen) isTarget() {}

// Window requests a fixed-size surface bound to a native window.
// The handle (an HWND on Windows) is borrowed from the windowing layer;
// the manager never owns or destroys it.
type Window struct {
	Handle uintptr
}

func (Window) isTarget() {}
