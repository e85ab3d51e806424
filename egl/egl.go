// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package egl provides the EGL/ANGLE binding layer used by the angle
// surface manager.
//
// The package defines opaque handle types mirroring the EGL object model
// (Display, Config, Context, Surface), the attribute constants the manager
// needs, and the API interface: the subset of EGL entry points the surface
// lifecycle touches. The real implementation loads libEGL.dll on Windows;
// other platforms report ErrNotSupported. Tests substitute their own API.
//
// All attribute lists passed to API methods must be terminated with None,
// matching the EGL convention.
package egl

import "errors"

// Handle types mirroring the EGL object model. All are opaque; a zero value
// is the corresponding EGL_NO_* sentinel.
type (
	// Display is an EGLDisplay handle.
	Display uintptr

	// Config is an EGLConfig handle.
	Config uintptr

	// Context is an EGLContext handle.
	Context uintptr

	// Surface is an EGLSurface handle.
	Surface uintptr

	// ClientBuffer is an EGLClientBuffer: an externally-allocated buffer
	// (here, a Direct3D texture pointer) imported as a pbuffer.
	ClientBuffer uintptr

	// Device is an EGLDeviceEXT handle from EGL_EXT_device_query.
	Device uintptr

	// Attrib is an EGLAttrib: a pointer-sized attribute value.
	Attrib uintptr

	// Int is an EGLint.
	Int int32

	// NativeWindow is an EGLNativeWindowType (HWND on Windows).
	NativeWindow uintptr
)

// Null handles.
const (
	NoDisplay Display = 0
	NoConfig  Config  = 0
	NoContext Context = 0
	NoSurface Surface = 0

	// DefaultDisplay is EGL_DEFAULT_DISPLAY.
	DefaultDisplay uintptr = 0
)

// Booleans.
const (
	False Int = 0
	True  Int = 1
)

// Config and surface attributes.
const (
	PbufferBit Int = 0x0001
	WindowBit  Int = 0x0004

	OpenGLES2Bit Int = 0x0004
	OpenGLES3Bit Int = 0x0040

	AlphaSize      Int = 0x3021
	BlueSize       Int = 0x3022
	GreenSize      Int = 0x3023
	RedSize        Int = 0x3024
	DepthSize      Int = 0x3025
	StencilSize    Int = 0x3026
	SurfaceType    Int = 0x3033
	None           Int = 0x3038
	RenderableType Int = 0x3040

	Height Int = 0x3056
	Width  Int = 0x3057

	Draw Int = 0x3059
	Read Int = 0x305A

	TextureRGBA Int = 0x305E
	Texture2D   Int = 0x305F

	TextureFormat Int = 0x3080
	TextureTarget Int = 0x3081
	BackBuffer    Int = 0x3084

	ContextClientVersion Int = 0x3098
)

// ANGLE and device-query extension attributes.
const (
	// EGL_ANGLE_platform_angle.
	FixedSizeANGLE                   Int = 0x3201
	PlatformANGLE                    Int = 0x3202
	PlatformANGLEType                Int = 0x3203
	PlatformANGLEMaxVersionMajor     Int = 0x3204
	PlatformANGLEMaxVersionMinor     Int = 0x3205
	PlatformANGLETypeD3D11           Int = 0x3208
	PlatformANGLEEnableAutomaticTrim Int = 0x320F

	// EGL_EXT_device_query.
	DeviceEXT Int = 0x322C

	// EGL_ANGLE_device_d3d.
	D3D11DeviceANGLE Int = 0x33A1

	// EGL_ANGLE_d3d_texture_client_buffer.
	D3DTextureANGLE Int = 0x33A3

	// EGL_ANGLE_experimental_present_path.
	ExperimentalPresentPathANGLE     Int = 0x33A4
	ExperimentalPresentPathFastANGLE Int = 0x33A9
)

// EGL error codes, as returned by eglGetError.
const (
	Success           Int = 0x3000
	NotInitialized    Int = 0x3001
	BadAccess         Int = 0x3002
	BadAlloc          Int = 0x3003
	BadAttribute      Int = 0x3004
	BadConfig         Int = 0x3005
	BadContext        Int = 0x3006
	BadCurrentSurface Int = 0x3007
	BadDisplay        Int = 0x3008
	BadMatch          Int = 0x3009
	BadNativePixmap   Int = 0x300A
	BadNativeWindow   Int = 0x300B
	BadParameter      Int = 0x300C
	BadSurface        Int = 0x300D
	ContextLost       Int = 0x300E
)

// ErrNotSupported is returned by Default on platforms without an
// ANGLE/EGL runtime.
var ErrNotSupported = errors.New("egl: not supported on this platform")

// Error is a failed EGL call. Code carries the value reported by
// eglGetError at the point of failure, captured immediately so a later
// call cannot overwrite it.
type Error struct {
	// Op is the EGL entry point that failed (e.g. "eglChooseConfig").
	Op string

	// Code is the EGL error code.
	Code Int
}

func (e Error) Error() string {
	return "egl: " + e.Op + ": " + ErrorName(e.Code)
}

// ErrorName returns the symbolic name for an EGL error code, or
// "EGL_UNKNOWN_ERROR" for codes outside the defined range.
func ErrorName(code Int) string {
	switch code {
	case Success:
		return "EGL_SUCCESS"
	case NotInitialized:
		return "EGL_NOT_INITIALIZED"
	case BadAccess:
		return "EGL_BAD_ACCESS"
	case BadAlloc:
		return "EGL_BAD_ALLOC"
	case BadAttribute:
		return "EGL_BAD_ATTRIBUTE"
	case BadConfig:
		return "EGL_BAD_CONFIG"
	case BadContext:
		return "EGL_BAD_CONTEXT"
	case BadCurrentSurface:
		return "EGL_BAD_CURRENT_SURFACE"
	case BadDisplay:
		return "EGL_BAD_DISPLAY"
	case BadMatch:
		return "EGL_BAD_MATCH"
	case BadNativePixmap:
		return "EGL_BAD_NATIVE_PIXMAP"
	case BadNativeWindow:
		return "EGL_BAD_NATIVE_WINDOW"
	case BadParameter:
		return "EGL_BAD_PARAMETER"
	case BadSurface:
		return "EGL_BAD_SURFACE"
	case ContextLost:
		return "EGL_CONTEXT_LOST"
	}
	return "EGL_UNKNOWN_ERROR"
}

// API is the subset of EGL entry points the surface manager uses.
//
// Implementations are not required to be safe for concurrent use; the
// manager serializes all calls on its owner goroutine. Methods that fail
// should return an Error (possibly wrapped) carrying the backend error
// code where one is available.
type API interface {
	// PlatformDisplay wraps eglGetPlatformDisplayEXT.
	PlatformDisplay(platform Int, nativeDisplay uintptr, attribs []Int) (Display, error)

	// Initialize wraps eglInitialize.
	Initialize(d Display) error

	// Terminate wraps eglTerminate.
	Terminate(d Display) error

	// ChooseConfig wraps eglChooseConfig requesting a single config.
	// It returns an error when no config matches.
	ChooseConfig(d Display, attribs []Int) (Config, error)

	// CreateContext wraps eglCreateContext. share may be NoContext.
	CreateContext(d Display, cfg Config, share Context, attribs []Int) (Context, error)

	// DestroyContext wraps eglDestroyContext.
	DestroyContext(d Display, ctx Context) error

	// CreateWindowSurface wraps eglCreateWindowSurface.
	CreateWindowSurface(d Display, cfg Config, win NativeWindow, attribs []Int) (Surface, error)

	// CreatePbufferFromClientBuffer wraps eglCreatePbufferFromClientBuffer.
	CreatePbufferFromClientBuffer(d Display, bufType Int, buf ClientBuffer, cfg Config, attribs []Int) (Surface, error)

	// DestroySurface wraps eglDestroySurface.
	DestroySurface(d Display, s Surface) error

	// MakeCurrent wraps eglMakeCurrent. draw and read may be NoSurface
	// to bind a context for resource-only work.
	MakeCurrent(d Display, draw, read Surface, ctx Context) error

	// SwapBuffers wraps eglSwapBuffers.
	SwapBuffers(d Display, s Surface) error

	// SwapInterval wraps eglSwapInterval.
	SwapInterval(d Display, interval Int) error

	// BindTexImage wraps eglBindTexImage.
	BindTexImage(d Display, s Surface, buffer Int) error

	// CurrentSurface wraps eglGetCurrentSurface; readDraw is Draw or Read.
	CurrentSurface(readDraw Int) Surface

	// QueryDisplayAttrib wraps eglQueryDisplayAttribEXT. It returns an
	// error when the extension is unavailable.
	QueryDisplayAttrib(d Display, attrib Int) (Attrib, error)

	// QueryDeviceAttrib wraps eglQueryDeviceAttribEXT. It returns an
	// error when the extension is unavailable.
	QueryDeviceAttrib(dev Device, attrib Int) (Attrib, error)
}
