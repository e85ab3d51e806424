package angle

import (
	"github.com/gogpu/angle/d3d11"
	"github.com/gogpu/angle/egl"
)

// attribValue scans a None-terminated attribute list for key.
func attribValue(attribs []egl.Int, key egl.Int) (egl.Int, bool) {
	for i := 0; i+1 < len(attribs); i += 2 {
		if attribs[i] == egl.None {
			break
		}
		if attribs[i] == key {
			return attribs[i+1], true
		}
	}
	return 0, false
}

// Config handles the fake hands out, keyed by what was requested.
const (
	fakeWindowConfig     egl.Config = 1
	fakePbufferES2Config egl.Config = 2
	fakePbufferES3Config egl.Config = 3
)

type makeCurrentCall struct {
	draw, read egl.Surface
	ctx        egl.Context
}

type contextCall struct {
	share egl.Context
	ctx   egl.Context
}

type windowCall struct {
	win     egl.NativeWindow
	attribs []egl.Int
}

type pbufferCall struct {
	bufType egl.Int
	buf     egl.ClientBuffer
	cfg     egl.Config
	attribs []egl.Int
}

// fakeAPI implements egl.API in memory with failure injection and call
// recording. The zero value is a fully working backend.
type fakeAPI struct {
	failTiers      int // PlatformDisplay calls that fail before one succeeds
	failInit       int // Initialize calls that fail before one succeeds
	failChoose     bool
	failChooseES3  bool
	failContextAt  int // 1-based index of the CreateContext call that fails
	failPbufferES3 bool
	failPbufferAll bool
	failWindow     bool
	failSwap       bool
	failTerminate  bool

	queryDisplayErr error
	queryDeviceErr  error

	displayAttempts [][]egl.Int
	initCount       int
	termCount       int
	chooseCalls     [][]egl.Int
	contexts        []contextCall
	destroyedCtxs   []egl.Context
	windowCalls     []windowCall
	pbuffers        []pbufferCall
	destroyedSurfs  []egl.Surface
	makeCurrents    []makeCurrentCall
	binds           []egl.Surface
	boundWhile      []egl.Surface // draw surface current at each BindTexImage
	swaps           []egl.Surface
	intervals       []egl.Int
	queryDisplays   int
	queryDevices    int

	current map[egl.Int]egl.Surface

	// events interleaves teardown steps across the fake API and the fake
	// device when both share the same slice.
	events *[]string

	nextCtx  uintptr
	nextSurf uintptr
}

func (f *fakeAPI) record(ev string) {
	if f.events != nil {
		*f.events = append(*f.events, ev)
	}
}

func eglFail(op string, code egl.Int) error {
	return egl.Error{Op: op, Code: code}
}

func (f *fakeAPI) PlatformDisplay(platform egl.Int, native uintptr, attribs []egl.Int) (egl.Display, error) {
	f.displayAttempts = append(f.displayAttempts, append([]egl.Int(nil), attribs...))
	if len(f.displayAttempts) <= f.failTiers {
		return egl.NoDisplay, eglFail("eglGetPlatformDisplayEXT", egl.BadAttribute)
	}
	return egl.Display(0xD), nil
}

func (f *fakeAPI) Initialize(d egl.Display) error {
	if f.failInit > 0 {
		f.failInit--
		return eglFail("eglInitialize", egl.NotInitialized)
	}
	f.initCount++
	return nil
}

func (f *fakeAPI) Terminate(d egl.Display) error {
	f.termCount++
	f.record("terminate")
	if f.failTerminate {
		return eglFail("eglTerminate", egl.BadDisplay)
	}
	return nil
}

func (f *fakeAPI) ChooseConfig(d egl.Display, attribs []egl.Int) (egl.Config, error) {
	f.chooseCalls = append(f.chooseCalls, append([]egl.Int(nil), attribs...))
	if f.failChoose {
		return egl.NoConfig, eglFail("eglChooseConfig", egl.BadAttribute)
	}
	rt, ok := attribValue(attribs, egl.RenderableType)
	switch {
	case ok && rt == egl.OpenGLES3Bit:
		if f.failChooseES3 {
			return egl.NoConfig, eglFail("eglChooseConfig", egl.BadAttribute)
		}
		return fakePbufferES3Config, nil
	case ok && rt == egl.OpenGLES2Bit:
		return fakePbufferES2Config, nil
	}
	return fakeWindowConfig, nil
}

func (f *fakeAPI) CreateContext(d egl.Display, cfg egl.Config, share egl.Context, attribs []egl.Int) (egl.Context, error) {
	if f.failContextAt == len(f.contexts)+1 {
		return egl.NoContext, eglFail("eglCreateContext", egl.BadConfig)
	}
	f.nextCtx++
	ctx := egl.Context(0x100 + f.nextCtx)
	f.contexts = append(f.contexts, contextCall{share: share, ctx: ctx})
	return ctx, nil
}

func (f *fakeAPI) DestroyContext(d egl.Display, ctx egl.Context) error {
	f.destroyedCtxs = append(f.destroyedCtxs, ctx)
	f.record("destroy-context")
	return nil
}

func (f *fakeAPI) newSurface() egl.Surface {
	f.nextSurf++
	return egl.Surface(0x200 + f.nextSurf)
}

func (f *fakeAPI) CreateWindowSurface(d egl.Display, cfg egl.Config, win egl.NativeWindow, attribs []egl.Int) (egl.Surface, error) {
	f.windowCalls = append(f.windowCalls, windowCall{win: win, attribs: append([]egl.Int(nil), attribs...)})
	if f.failWindow {
		return egl.NoSurface, eglFail("eglCreateWindowSurface", egl.BadNativeWindow)
	}
	return f.newSurface(), nil
}

func (f *fakeAPI) CreatePbufferFromClientBuffer(d egl.Display, bufType egl.Int, buf egl.ClientBuffer, cfg egl.Config, attribs []egl.Int) (egl.Surface, error) {
	f.pbuffers = append(f.pbuffers, pbufferCall{bufType: bufType, buf: buf, cfg: cfg, attribs: append([]egl.Int(nil), attribs...)})
	if f.failPbufferAll {
		return egl.NoSurface, eglFail("eglCreatePbufferFromClientBuffer", egl.BadAlloc)
	}
	if f.failPbufferES3 && cfg == fakePbufferES3Config {
		return egl.NoSurface, eglFail("eglCreatePbufferFromClientBuffer", egl.BadMatch)
	}
	return f.newSurface(), nil
}

func (f *fakeAPI) DestroySurface(d egl.Display, s egl.Surface) error {
	f.destroyedSurfs = append(f.destroyedSurfs, s)
	return nil
}

func (f *fakeAPI) MakeCurrent(d egl.Display, draw, read egl.Surface, ctx egl.Context) error {
	f.makeCurrents = append(f.makeCurrents, makeCurrentCall{draw: draw, read: read, ctx: ctx})
	f.setCurrent(draw, read)
	return nil
}

func (f *fakeAPI) setCurrent(draw, read egl.Surface) {
	if f.current == nil {
		f.current = make(map[egl.Int]egl.Surface)
	}
	f.current[egl.Draw] = draw
	f.current[egl.Read] = read
}

func (f *fakeAPI) SwapBuffers(d egl.Display, s egl.Surface) error {
	f.swaps = append(f.swaps, s)
	if f.failSwap {
		return eglFail("eglSwapBuffers", egl.ContextLost)
	}
	return nil
}

func (f *fakeAPI) SwapInterval(d egl.Display, interval egl.Int) error {
	f.intervals = append(f.intervals, interval)
	return nil
}

func (f *fakeAPI) BindTexImage(d egl.Display, s egl.Surface, buffer egl.Int) error {
	f.binds = append(f.binds, s)
	f.boundWhile = append(f.boundWhile, f.current[egl.Draw])
	return nil
}

func (f *fakeAPI) CurrentSurface(readDraw egl.Int) egl.Surface {
	return f.current[readDraw]
}

func (f *fakeAPI) QueryDisplayAttrib(d egl.Display, attrib egl.Int) (egl.Attrib, error) {
	f.queryDisplays++
	if f.queryDisplayErr != nil {
		return 0, f.queryDisplayErr
	}
	return egl.Attrib(0xD15), nil
}

func (f *fakeAPI) QueryDeviceAttrib(dev egl.Device, attrib egl.Int) (egl.Attrib, error) {
	f.queryDevices++
	if f.queryDeviceErr != nil {
		return 0, f.queryDeviceErr
	}
	return egl.Attrib(0xDE7), nil
}

// fakeDevice implements d3d11.Device in memory. The zero value creates
// textures that all export shared handles.
type fakeDevice struct {
	failRender      bool
	failStaging     bool
	noHandle        bool // no texture exports a shared handle
	noStagingHandle bool // only shareable textures fail to export

	descs    []d3d11.Texture2DDesc
	textures []*fakeTexture
	ctx      *fakeContext
	ctxErr   error
	released int
	events   *[]string
}

func (d *fakeDevice) CreateTexture2D(desc *d3d11.Texture2DDesc) (d3d11.Texture2D, error) {
	d.descs = append(d.descs, *desc)
	staging := desc.MiscFlags&d3d11.MiscShared != 0
	if staging && d.failStaging {
		return nil, d3d11.ErrNotSupported
	}
	if !staging && d.failRender {
		return nil, d3d11.ErrNotSupported
	}
	n := uintptr(len(d.textures) + 1)
	tex := &fakeTexture{
		native: 0x1000 + n,
		handle: d3d11.SharedHandle(0x700 + n),
	}
	if d.noHandle || (staging && d.noStagingHandle) {
		tex.handleErr = d3d11.ErrNotSupported
	}
	d.textures = append(d.textures, tex)
	return tex, nil
}

func (d *fakeDevice) ImmediateContext() (d3d11.DeviceContext, error) {
	if d.ctxErr != nil {
		return nil, d.ctxErr
	}
	if d.ctx == nil {
		d.ctx = &fakeContext{}
	}
	return d.ctx, nil
}

func (d *fakeDevice) Release() {
	d.released++
	if d.events != nil {
		*d.events = append(*d.events, "release-device")
	}
}

type copyCall struct {
	dst, src d3d11.Texture2D
}

type fakeContext struct {
	copies   []copyCall
	flushes  int
	released int
}

func (c *fakeContext) CopyResource(dst, src d3d11.Texture2D) {
	c.copies = append(c.copies, copyCall{dst: dst, src: src})
}

func (c *fakeContext) Flush()   { c.flushes++ }
func (c *fakeContext) Release() { c.released++ }

type fakeTexture struct {
	native    uintptr
	handle    d3d11.SharedHandle
	handleErr error
	released  int
}

func (t *fakeTexture) SharedHandle() (d3d11.SharedHandle, error) {
	if t.handleErr != nil {
		return 0, t.handleErr
	}
	return t.handle, nil
}

func (t *fakeTexture) NativePointer() uintptr { return t.native }
func (t *fakeTexture) Release()               { t.released++ }

// adopt wires a fake device into the manager's device resolution path.
func adopt(dev *fakeDevice) Option {
	return WithDeviceAdopter(func(ptr uintptr) (d3d11.Device, error) {
		return dev, nil
	})
}
