package angle

import (
	"errors"
	"fmt"

	"github.com/gogpu/angle/d3d11"
	"github.com/gogpu/angle/egl"
)

// windowConfigAttribs is the pixel-format configuration requested at
// bring-up and reused for window surfaces: RGBA 8-8-8-8 with 8-bit depth
// and stencil.
var windowConfigAttribs = []egl.Int{
	egl.RedSize, 8, egl.GreenSize, 8,
	egl.BlueSize, 8, egl.AlphaSize, 8,
	egl.DepthSize, 8, egl.StencilSize, 8,
	egl.None,
}

// contextAttribs requests OpenGL ES 2 contexts.
var contextAttribs = []egl.Int{
	egl.ContextClientVersion, 2,
	egl.None,
}

// pbufferConfigAttribs builds the config request for texture-backed
// pbuffer surfaces. renderableType is OpenGLES3Bit on the first attempt
// and OpenGLES2Bit on the fallback.
func pbufferConfigAttribs(renderableType egl.Int) []egl.Int {
	return []egl.Int{
		egl.RenderableType, renderableType,
		egl.SurfaceType, egl.PbufferBit,
		egl.RedSize, 8,
		egl.GreenSize, 8,
		egl.BlueSize, 8,
		egl.AlphaSize, 8,
		egl.DepthSize, 8,
		egl.StencilSize, 8,
		egl.None,
	}
}

// SurfaceManager owns one EGL display/context pair and at most one active
// drawable surface, either bound to a native window or backed by a
// shareable Direct3D texture for off-screen compositing.
//
// SurfaceManager is NOT safe for concurrent use: one goroutine, locked to
// its OS thread, must own each instance. The underlying display is shared
// across instances and reference counted; only destroying the last live
// manager terminates it.
type SurfaceManager struct {
	api             egl.API
	display         egl.Display
	config          egl.Config
	context         egl.Context
	resourceContext egl.Context

	surface       egl.Surface
	surfaceWidth  int
	surfaceHeight int
	target        *TextureTarget

	// device is the D3D11 device ANGLE renders through, resolved lazily
	// and cached for the manager's lifetime.
	device      d3d11.Device
	adoptDevice func(uintptr) (d3d11.Device, error)

	onPresent PresentCallback
	destroyed bool
}

// New creates a SurfaceManager: it acquires the shared display (walking
// the capability tiers on first use), chooses the window pixel-format
// configuration, and creates the primary and resource contexts. The
// resource context shares the primary's object namespace so uploads on
// one are visible to the other.
//
// On any failure New returns a nil manager and an error; no partially
// initialized manager is ever returned.
func New(opts ...Option) (*SurfaceManager, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	api := o.api
	if api == nil {
		var err error
		api, err = egl.Default()
		if err != nil {
			return nil, err
		}
	}

	display, err := acquireDisplay(api)
	if err != nil {
		return nil, err
	}

	m := &SurfaceManager{
		api:         api,
		display:     display,
		adoptDevice: o.adoptDevice,
		onPresent:   o.onPresent,
	}
	if err := m.initialize(); err != nil {
		releaseDisplay(api)
		return nil, err
	}
	return m, nil
}

// initialize chooses the window config and creates both contexts.
func (m *SurfaceManager) initialize() error {
	config, err := m.api.ChooseConfig(m.display, windowConfigAttribs)
	if err != nil {
		logEGL("choosing framebuffer configuration", err)
		return fmt.Errorf("angle: choosing framebuffer configuration: %w", err)
	}
	m.config = config

	context, err := m.api.CreateContext(m.display, config, egl.NoContext, contextAttribs)
	if err != nil {
		logEGL("creating EGL context", err)
		return fmt.Errorf("angle: creating EGL context: %w", err)
	}
	m.context = context

	resource, err := m.api.CreateContext(m.display, config, context, contextAttribs)
	if err != nil {
		logEGL("creating EGL resource context", err)
		if derr := m.api.DestroyContext(m.display, context); derr != nil {
			logEGL("destroying context", derr)
		}
		m.context = egl.NoContext
		return fmt.Errorf("angle: creating EGL resource context: %w", err)
	}
	m.resourceContext = resource

	return nil
}

// CreateSurface creates the active drawable surface at width×height.
//
// With an Offscreen target (or nil), the surface is a pbuffer imported
// from a freshly allocated shareable D3D11 texture; with a Window target
// it is a fixed-size window surface using the configuration chosen at
// bring-up. Creating a surface while one is active tears the previous
// render target down first.
//
// On failure the surface is unusable and no particular partial-cleanup
// state is guaranteed: call DestroySurface and retry.
func (m *SurfaceManager) CreateSurface(target Target, width, height int, vsync bool) error {
	if m.destroyed {
		return ErrManagerDestroyed
	}

	var (
		surface egl.Surface
		err     error
	)
	switch t := target.(type) {
	case Window:
		surface, err = m.createWindowSurface(t, width, height)
		if err == nil && m.target != nil {
			// A leftover texture target would keep firing the present
			// callback on swaps of the new window surface.
			m.target.release()
			m.target = nil
		}
	default:
		surface, err = m.createOffscreenSurface(width, height)
	}
	if err != nil {
		return err
	}

	m.surface = surface
	m.surfaceWidth = width
	m.surfaceHeight = height

	m.setVSync(vsync)
	return nil
}

// createOffscreenSurface allocates a TextureTarget and imports its render
// texture as a pbuffer surface.
func (m *SurfaceManager) createOffscreenSurface(width, height int) (egl.Surface, error) {
	target := newTextureTarget(width, height)

	device, err := m.GetDevice()
	if err != nil {
		return egl.NoSurface, err
	}
	if err := target.init(device); err != nil {
		return egl.NoSurface, err
	}
	if m.target != nil {
		m.target.release()
	}
	m.target = target

	config, err := m.api.ChooseConfig(m.display, pbufferConfigAttribs(egl.OpenGLES3Bit))
	if err != nil {
		return egl.NoSurface, fmt.Errorf("angle: choosing pbuffer configuration: %w", err)
	}

	surfaceAttribs := []egl.Int{
		egl.Width, egl.Int(width),
		egl.Height, egl.Int(height),
		egl.TextureTarget, egl.Texture2D,
		egl.TextureFormat, egl.TextureRGBA,
		egl.None,
	}

	buffer := egl.ClientBuffer(target.Texture().NativePointer())
	surface, err := m.api.CreatePbufferFromClientBuffer(m.display,
		egl.D3DTextureANGLE, buffer, config, surfaceAttribs)
	if err != nil {
		// Retry with ES2: older hardware may not expose an ES3-renderable
		// config for client-buffer pbuffers.
		config, cerr := m.api.ChooseConfig(m.display, pbufferConfigAttribs(egl.OpenGLES2Bit))
		if cerr == nil {
			surface, err = m.api.CreatePbufferFromClientBuffer(m.display,
				egl.D3DTextureANGLE, buffer, config, surfaceAttribs)
		}
		if err != nil {
			logEGL("creating pbuffer surface from texture", err)
			return egl.NoSurface, fmt.Errorf("angle: creating pbuffer surface: %w", err)
		}
	}

	target.SetSurface(surface, 0)

	// Bind the surface as the color attachment of the current context,
	// preserving whatever surfaces the caller had current: this call must
	// not disturb current-context state for unrelated surfaces.
	draw := m.api.CurrentSurface(egl.Draw)
	read := m.api.CurrentSurface(egl.Read)
	_ = m.api.MakeCurrent(m.display, surface, surface, m.context)
	_ = m.api.BindTexImage(m.display, surface, egl.BackBuffer)
	_ = m.api.MakeCurrent(m.display, draw, read, m.context)

	return surface, nil
}

// createWindowSurface creates a fixed-size surface over a native window.
// The window handle stays owned by the windowing layer.
func (m *SurfaceManager) createWindowSurface(target Window, width, height int) (egl.Surface, error) {
	// Fixed size: ANGLE must not resize the surface behind the caller's
	// back, or resize redraw synchronization breaks.
	surfaceAttribs := []egl.Int{
		egl.FixedSizeANGLE, egl.True,
		egl.Width, egl.Int(width),
		egl.Height, egl.Int(height),
		egl.None,
	}

	surface, err := m.api.CreateWindowSurface(m.display, m.config,
		egl.NativeWindow(target.Handle), surfaceAttribs)
	if err != nil {
		logEGL("creating window surface", err)
		return egl.NoSurface, fmt.Errorf("angle: creating window surface: %w", err)
	}
	return surface, nil
}

// ResizeSurface recreates the active surface at width×height. It is a
// no-op when the requested dimensions equal the cached current dimensions.
//
// Resizing always produces a texture-backed off-screen surface, regardless
// of the target argument or what kind of surface was active before.
// Recreation failure is logged but not reported to the caller; the
// manager is left without a usable surface.
func (m *SurfaceManager) ResizeSurface(target Target, width, height int, vsync bool) {
	w, h := m.GetSurfaceDimensions()
	if width == w && height == h {
		return
	}

	m.surfaceWidth = width
	m.surfaceHeight = height

	if err := m.ClearContext(); err != nil {
		logEGL("clearing context for resize", err)
	}
	m.DestroySurface()
	if err := m.CreateSurface(Offscreen{}, width, height, vsync); err != nil {
		Logger().Error("angle: resize failed to recreate surface",
			"err", err, "width", width, "height", height)
	}
}

// GetSurfaceDimensions returns the dimensions the caller asked for, or
// (0, 0) when no surface is active.
//
// The values are cached, never re-queried from EGL: ANGLE may resize a
// surface before being asked to, and the cached values are the source of
// truth for what the caller requested.
func (m *SurfaceManager) GetSurfaceDimensions() (width, height int) {
	if m.surface == egl.NoSurface {
		return 0, 0
	}
	return m.surfaceWidth, m.surfaceHeight
}

// DestroySurface destroys the active surface and releases its render
// target. Safe to call when no surface exists.
func (m *SurfaceManager) DestroySurface() {
	if m.display != egl.NoDisplay && m.surface != egl.NoSurface {
		if err := m.api.DestroySurface(m.display, m.surface); err != nil {
			logEGL("destroying surface", err)
		}
	}
	m.surface = egl.NoSurface
	m.surfaceWidth = 0
	m.surfaceHeight = 0
	if m.target != nil {
		m.target.release()
		m.target = nil
	}
}

// MakeCurrent binds the primary context to the active surface on the
// calling thread.
func (m *SurfaceManager) MakeCurrent() error {
	return m.api.MakeCurrent(m.display, m.surface, m.surface, m.context)
}

// ClearContext keeps the primary context current but unbinds any surface.
func (m *SurfaceManager) ClearContext() error {
	return m.api.MakeCurrent(m.display, egl.NoSurface, egl.NoSurface, m.context)
}

// MakeResourceCurrent binds the resource context with no surface, for
// off-thread resource uploads sharing the primary's object namespace.
func (m *SurfaceManager) MakeResourceCurrent() error {
	return m.api.MakeCurrent(m.display, egl.NoSurface, egl.NoSurface, m.resourceContext)
}

// SetPresentCallback registers the consumer of texture-backed frames.
// The callback is invoked synchronously, once per successful SwapBuffers
// on a texture-backed surface. Pass nil to unregister.
func (m *SurfaceManager) SetPresentCallback(cb PresentCallback) {
	m.onPresent = cb
}

// SwapBuffers presents the active surface.
//
// For a texture-backed surface it additionally publishes the frame to the
// shareable texture and invokes the registered present callback with the
// shared handle and dimensions. A window-backed surface never triggers
// the callback.
func (m *SurfaceManager) SwapBuffers() (PresentResult, error) {
	swapErr := m.api.SwapBuffers(m.display, m.surface)

	result := Presented
	if m.target != nil {
		m.target.Unlock()
		handle := m.target.SharedHandle()
		if m.onPresent != nil {
			m.onPresent(handle, m.target.Width(), m.target.Height())
		}
		if handle == 0 {
			result = PresentedNoHandle
		}
	}

	if swapErr != nil {
		return PresentFailed, fmt.Errorf("angle: swapping buffers: %w", swapErr)
	}
	return result, nil
}

// CreateSurfaceFromHandle imports an externally supplied client buffer as
// a pbuffer surface using the manager's chosen configuration. The surface
// is returned raw, with no manager bookkeeping; the caller owns it.
func (m *SurfaceManager) CreateSurfaceFromHandle(handleType egl.Int, buffer egl.ClientBuffer, attribs []egl.Int) (egl.Surface, error) {
	return m.api.CreatePbufferFromClientBuffer(m.display, handleType, buffer, m.config, attribs)
}

// GetDevice resolves the Direct3D 11 device ANGLE renders through, by way
// of the display- and device-attribute query extensions. The result is
// cached for the manager's lifetime; the manager releases it during
// Destroy, before the contexts go away.
func (m *SurfaceManager) GetDevice() (d3d11.Device, error) {
	if m.device != nil {
		return m.device, nil
	}

	eglDevice, err := m.api.QueryDisplayAttrib(m.display, egl.DeviceEXT)
	if err != nil {
		return nil, fmt.Errorf("%w: querying EGL device: %w", ErrNoDevice, err)
	}
	native, err := m.api.QueryDeviceAttrib(egl.Device(eglDevice), egl.D3D11DeviceANGLE)
	if err != nil {
		return nil, fmt.Errorf("%w: querying D3D11 device: %w", ErrNoDevice, err)
	}

	device, err := m.adoptDevice(uintptr(native))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}
	m.device = device
	return device, nil
}

// swapIntervalControl gates the swap-interval update in setVSync. Interval
// control is inert for now: blocking the raster thread until the v-blank
// is redundant while DWM composition is enabled, and the interaction with
// non-composited desktops has not been settled.
const swapIntervalControl = false

// setVSync applies the swap-interval policy to the active surface:
// interval 1 blocks SwapBuffers until the v-blank, interval 0 presents
// immediately. Currently inert; see swapIntervalControl.
func (m *SurfaceManager) setVSync(enabled bool) {
	if !swapIntervalControl {
		return
	}
	if err := m.api.MakeCurrent(m.display, m.surface, m.surface, m.context); err != nil {
		logEGL("making surface current to update the swap interval", err)
		return
	}
	interval := egl.Int(0)
	if enabled {
		interval = 1
	}
	if err := m.api.SwapInterval(m.display, interval); err != nil {
		logEGL("updating the swap interval", err)
	}
}

// Destroy tears the manager down. Order matters: the resolved device
// reference must not outlive the contexts, the contexts must not outlive
// the display, and the shared display is terminated only when this was
// the last live manager. Every step is best-effort; failures are logged
// and teardown continues. Destroy is idempotent.
func (m *SurfaceManager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true

	if m.device != nil {
		m.device.Release()
		m.device = nil
	}

	if m.display != egl.NoDisplay && m.resourceContext != egl.NoContext {
		if err := m.api.DestroyContext(m.display, m.resourceContext); err != nil {
			logEGL("destroying resource context", err)
		}
		m.resourceContext = egl.NoContext
	}

	if m.display != egl.NoDisplay && m.context != egl.NoContext {
		if err := m.api.DestroyContext(m.display, m.context); err != nil {
			logEGL("destroying context", err)
		}
		m.context = egl.NoContext
	}

	if m.display != egl.NoDisplay {
		releaseDisplay(m.api)
		m.display = egl.NoDisplay
	}
}

// logEGL logs a failed EGL operation, attaching the backend error code
// when the error carries one.
func logEGL(msg string, err error) {
	var eglErr egl.Error
	if errors.As(err, &eglErr) {
		Logger().Error("angle: "+msg, "err", err, "egl_error", egl.ErrorName(eglErr.Code))
		return
	}
	Logger().Error("angle: "+msg, "err", err)
}
