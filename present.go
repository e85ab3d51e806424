package angle

import "github.com/gogpu/angle/d3d11"

// PresentCallback receives one completed frame of a texture-backed
// surface: the shared handle of the texture holding the frame and its
// dimensions in pixels.
//
// The callback runs synchronously inside SwapBuffers on the rendering
// goroutine, so it must not block indefinitely. The handle stays valid
// until the next present or until the surface is destroyed; retaining it
// across frames requires the consumer's own device-level referencing.
type PresentCallback func(handle d3d11.SharedHandle, width, height int)

// PresentResult reports how a SwapBuffers call completed.
type PresentResult int

const (
	// PresentFailed means the buffer swap itself failed.
	PresentFailed PresentResult = iota

	// Presented means the frame was presented normally.
	Presented

	// PresentedNoHandle means the frame was presented from a
	// texture-backed surface whose shared handle could not be extracted
	// at creation time. The present callback still ran, but with a zero
	// handle; the consumer cannot see this frame.
	PresentedNoHandle
)

// String returns the result name for logs and test output.
func (r PresentResult) String() string {
	switch r {
	case PresentFailed:
		return "PresentFailed"
	case Presented:
		return "Presented"
	case PresentedNoHandle:
		return "PresentedNoHandle"
	}
	return "PresentResult(unknown)"
}
