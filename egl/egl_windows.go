// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package egl

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	libEGL = windows.NewLazySystemDLL("libEGL.dll")

	procBindTexImage                  = libEGL.NewProc("eglBindTexImage")
	procChooseConfig                  = libEGL.NewProc("eglChooseConfig")
	procCreateContext                 = libEGL.NewProc("eglCreateContext")
	procCreatePbufferFromClientBuffer = libEGL.NewProc("eglCreatePbufferFromClientBuffer")
	procCreateWindowSurface           = libEGL.NewProc("eglCreateWindowSurface")
	procDestroyContext                = libEGL.NewProc("eglDestroyContext")
	procDestroySurface                = libEGL.NewProc("eglDestroySurface")
	procGetCurrentSurface             = libEGL.NewProc("eglGetCurrentSurface")
	procGetError                      = libEGL.NewProc("eglGetError")
	procGetProcAddress                = libEGL.NewProc("eglGetProcAddress")
	procInitialize                    = libEGL.NewProc("eglInitialize")
	procMakeCurrent                   = libEGL.NewProc("eglMakeCurrent")
	procSwapBuffers                   = libEGL.NewProc("eglSwapBuffers")
	procSwapInterval                  = libEGL.NewProc("eglSwapInterval")
	procTerminate                     = libEGL.NewProc("eglTerminate")
)

// Default returns the API backed by the ANGLE runtime's libEGL.dll.
// It fails with ErrNotSupported when the library cannot be loaded.
func Default() (API, error) {
	if err := libEGL.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSupported, err)
	}
	return &dllAPI{}, nil
}

// dllAPI implements API over libEGL.dll. Extension entry points are
// resolved once through eglGetProcAddress; a zero address means the
// extension is absent on this runtime.
type dllAPI struct {
	extOnce sync.Once

	getPlatformDisplayEXT uintptr
	queryDisplayAttribEXT uintptr
	queryDeviceAttribEXT  uintptr
}

func (a *dllAPI) resolveExt() {
	a.extOnce.Do(func() {
		a.getPlatformDisplayEXT = getProcAddress("eglGetPlatformDisplayEXT")
		a.queryDisplayAttribEXT = getProcAddress("eglQueryDisplayAttribEXT")
		a.queryDeviceAttribEXT = getProcAddress("eglQueryDeviceAttribEXT")
	})
}

func getProcAddress(name string) uintptr {
	b := append([]byte(name), 0)
	addr, _, _ := procGetProcAddress.Call(uintptr(unsafe.Pointer(&b[0])))
	return addr
}

// lastError captures eglGetError for a failed entry point. Called
// immediately at the failure site so a later call cannot overwrite the code.
func lastError(op string) error {
	code, _, _ := procGetError.Call()
	return Error{Op: op, Code: Int(code)}
}

func (a *dllAPI) PlatformDisplay(platform Int, nativeDisplay uintptr, attribs []Int) (Display, error) {
	a.resolveExt()
	if a.getPlatformDisplayEXT == 0 {
		return NoDisplay, fmt.Errorf("egl: eglGetPlatformDisplayEXT: %w", ErrNotSupported)
	}
	d, _, _ := syscall.SyscallN(a.getPlatformDisplayEXT,
		uintptr(platform), nativeDisplay, uintptr(unsafe.Pointer(&attribs[0])))
	if Display(d) == NoDisplay {
		return NoDisplay, lastError("eglGetPlatformDisplayEXT")
	}
	return Display(d), nil
}

func (a *dllAPI) Initialize(d Display) error {
	ok, _, _ := procInitialize.Call(uintptr(d), 0, 0)
	if Int(ok) == False {
		return lastError("eglInitialize")
	}
	return nil
}

func (a *dllAPI) Terminate(d Display) error {
	ok, _, _ := procTerminate.Call(uintptr(d))
	if Int(ok) == False {
		return lastError("eglTerminate")
	}
	return nil
}

func (a *dllAPI) ChooseConfig(d Display, attribs []Int) (Config, error) {
	var (
		cfg Config
		n   Int
	)
	ok, _, _ := procChooseConfig.Call(uintptr(d),
		uintptr(unsafe.Pointer(&attribs[0])),
		uintptr(unsafe.Pointer(&cfg)), 1,
		uintptr(unsafe.Pointer(&n)))
	if Int(ok) == False || n == 0 {
		return NoConfig, lastError("eglChooseConfig")
	}
	return cfg, nil
}

func (a *dllAPI) CreateContext(d Display, cfg Config, share Context, attribs []Int) (Context, error) {
	ctx, _, _ := procCreateContext.Call(uintptr(d), uintptr(cfg), uintptr(share),
		uintptr(unsafe.Pointer(&attribs[0])))
	if Context(ctx) == NoContext {
		return NoContext, lastError("eglCreateContext")
	}
	return Context(ctx), nil
}

func (a *dllAPI) DestroyContext(d Display, ctx Context) error {
	ok, _, _ := procDestroyContext.Call(uintptr(d), uintptr(ctx))
	if Int(ok) == False {
		return lastError("eglDestroyContext")
	}
	return nil
}

func (a *dllAPI) CreateWindowSurface(d Display, cfg Config, win NativeWindow, attribs []Int) (Surface, error) {
	s, _, _ := procCreateWindowSurface.Call(uintptr(d), uintptr(cfg), uintptr(win),
		uintptr(unsafe.Pointer(&attribs[0])))
	if Surface(s) == NoSurface {
		return NoSurface, lastError("eglCreateWindowSurface")
	}
	return Surface(s), nil
}

func (a *dllAPI) CreatePbufferFromClientBuffer(d Display, bufType Int, buf ClientBuffer, cfg Config, attribs []Int) (Surface, error) {
	s, _, _ := procCreatePbufferFromClientBuffer.Call(uintptr(d), uintptr(bufType),
		uintptr(buf), uintptr(cfg),
		uintptr(unsafe.Pointer(&attribs[0])))
	if Surface(s) == NoSurface {
		return NoSurface, lastError("eglCreatePbufferFromClientBuffer")
	}
	return Surface(s), nil
}

func (a *dllAPI) DestroySurface(d Display, s Surface) error {
	ok, _, _ := procDestroySurface.Call(uintptr(d), uintptr(s))
	if Int(ok) == False {
		return lastError("eglDestroySurface")
	}
	return nil
}

func (a *dllAPI) MakeCurrent(d Display, draw, read Surface, ctx Context) error {
	ok, _, _ := procMakeCurrent.Call(uintptr(d), uintptr(draw), uintptr(read), uintptr(ctx))
	if Int(ok) == False {
		return lastError("eglMakeCurrent")
	}
	return nil
}

func (a *dllAPI) SwapBuffers(d Display, s Surface) error {
	ok, _, _ := procSwapBuffers.Call(uintptr(d), uintptr(s))
	if Int(ok) == False {
		return lastError("eglSwapBuffers")
	}
	return nil
}

func (a *dllAPI) SwapInterval(d Display, interval Int) error {
	ok, _, _ := procSwapInterval.Call(uintptr(d), uintptr(interval))
	if Int(ok) == False {
		return lastError("eglSwapInterval")
	}
	return nil
}

func (a *dllAPI) BindTexImage(d Display, s Surface, buffer Int) error {
	ok, _, _ := procBindTexImage.Call(uintptr(d), uintptr(s), uintptr(buffer))
	if Int(ok) == False {
		return lastError("eglBindTexImage")
	}
	return nil
}

func (a *dllAPI) CurrentSurface(readDraw Int) Surface {
	s, _, _ := procGetCurrentSurface.Call(uintptr(readDraw))
	return Surface(s)
}

func (a *dllAPI) QueryDisplayAttrib(d Display, attrib Int) (Attrib, error) {
	a.resolveExt()
	if a.queryDisplayAttribEXT == 0 {
		return 0, fmt.Errorf("egl: eglQueryDisplayAttribEXT: %w", ErrNotSupported)
	}
	var value Attrib
	ok, _, _ := syscall.SyscallN(a.queryDisplayAttribEXT,
		uintptr(d), uintptr(attrib), uintptr(unsafe.Pointer(&value)))
	if Int(ok) == False {
		return 0, lastError("eglQueryDisplayAttribEXT")
	}
	return value, nil
}

func (a *dllAPI) QueryDeviceAttrib(dev Device, attrib Int) (Attrib, error) {
	a.resolveExt()
	if a.queryDeviceAttribEXT == 0 {
		return 0, fmt.Errorf("egl: eglQueryDeviceAttribEXT: %w", ErrNotSupported)
	}
	var value Attrib
	ok, _, _ := syscall.SyscallN(a.queryDeviceAttribEXT,
		uintptr(dev), uintptr(attrib), uintptr(unsafe.Pointer(&value)))
	if Int(ok) == False {
		return 0, lastError("eglQueryDeviceAttribEXT")
	}
	return value, nil
}
