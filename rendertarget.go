package angle

import (
	"fmt"

	"github.com/gogpu/angle/d3d11"
	"github.com/gogpu/angle/egl"
	"github.com/gogpu/gputypes"
)

// TextureTarget is an off-screen render target backed by a pair of
// Direct3D textures: a render texture that ANGLE draws into, and a
// shareable staging texture published to the external consumer through a
// DXGI shared handle on every present.
//
// Dimensions are fixed at construction. The manager owns the target and
// releases its GPU resources explicitly before the device and contexts go
// away; there is no finalizer.
type TextureTarget struct {
	width  int
	height int

	device  d3d11.Device
	texture d3d11.Texture2D
	staging d3d11.Texture2D
	handle  d3d11.SharedHandle

	surface   egl.Surface
	textureID uint32
}

func newTextureTarget(width, height int) *TextureTarget {
	return &TextureTarget{width: width, height: height}
}

// init allocates the target's textures on device and extracts the shared
// handle. The render texture is default-usage BGRA8, one mip, one sample,
// bindable as render target and shader resource; the staging texture adds
// MiscShared so another device can open it.
//
// Shared-handle extraction failure is tolerated: the target stays usable
// for rendering but presents report PresentedNoHandle.
func (t *TextureTarget) init(device d3d11.Device) error {
	if device == nil {
		return ErrNoDevice
	}

	desc := d3d11.Texture2DDesc{
		Width:       uint32(t.width),
		Height:      uint32(t.height),
		MipLevels:   1,
		ArraySize:   1,
		Format:      d3d11.FormatB8G8R8A8Unorm,
		SampleCount: 1,
		Usage:       d3d11.UsageDefault,
		BindFlags:   d3d11.BindRenderTarget | d3d11.BindShaderResource,
	}
	texture, err := device.CreateTexture2D(&desc)
	if err != nil {
		return fmt.Errorf("angle: creating render texture: %w", err)
	}

	desc.BindFlags = d3d11.BindShaderResource
	desc.MiscFlags = d3d11.MiscShared
	staging, err := device.CreateTexture2D(&desc)
	if err != nil {
		texture.Release()
		return fmt.Errorf("angle: creating shareable texture: %w", err)
	}

	t.device = device
	t.texture = texture
	t.staging = staging

	// Prefer the shareable texture's handle; fall back to the render
	// texture. A zero handle is tolerated here and surfaces later as
	// PresentedNoHandle.
	if h, err := t.staging.SharedHandle(); err == nil {
		t.handle = h
	} else if h, err := t.texture.SharedHandle(); err == nil {
		t.handle = h
	}

	return nil
}

// Lock is a placeholder for acquiring a keyed mutex on the shared texture
// before the consumer reads it. No synchronization is performed today.
func (t *TextureTarget) Lock() {}

// Unlock publishes the current frame: it copies the render texture into
// the shareable staging texture on the device's immediate context and
// flushes, making the frame visible through the shared handle.
func (t *TextureTarget) Unlock() {
	if t.device == nil || t.texture == nil || t.staging == nil {
		return
	}
	ctx, err := t.device.ImmediateContext()
	if err != nil {
		return
	}
	ctx.CopyResource(t.staging, t.texture)
	ctx.Flush()
	ctx.Release()
}

// SetSurface records the EGL surface created over the render texture and
// the GL texture object id bound to it.
func (t *TextureTarget) SetSurface(surface egl.Surface, textureID uint32) {
	t.surface = surface
	t.textureID = textureID
}

// Width returns the target width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Texture returns the render texture ANGLE draws into.
func (t *TextureTarget) Texture() d3d11.Texture2D { return t.texture }

// SharedHandle returns the DXGI shared handle of the published texture.
// Zero when extraction failed at creation time.
func (t *TextureTarget) SharedHandle() d3d11.SharedHandle { return t.handle }

// Surface returns the EGL surface bound over the render texture.
func (t *TextureTarget) Surface() egl.Surface { return t.surface }

// TextureID returns the GL texture object id associated with the surface.
func (t *TextureTarget) TextureID() uint32 { return t.textureID }

// Format returns the pixel format of the target's textures.
func (t *TextureTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// release frees the target's GPU textures. Safe to call more than once.
// Must run before the owning device and contexts are destroyed.
func (t *TextureTarget) release() {
	if t.staging != nil {
		t.staging.Release()
		t.staging = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
	t.handle = 0
	t.surface = egl.NoSurface
	t.device = nil
}
