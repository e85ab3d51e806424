// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package d3d11

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// COM vtable slots for the interfaces touched here. Slot numbers count
// from IUnknown and must match the SDK headers exactly.
const (
	vtblQueryInterface = 0
	vtblAddRef         = 1
	vtblRelease        = 2

	// ID3D11Device
	vtblDeviceCreateTexture2D     = 5
	vtblDeviceGetImmediateContext = 40

	// ID3D11DeviceContext
	vtblContextCopyResource = 47
	vtblContextFlush        = 111

	// IDXGIResource
	vtblResourceGetSharedHandle = 8
)

// comGUID matches the Windows GUID layout.
type comGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

var iidIDXGIResource = comGUID{0x035f3ab4, 0x482e, 0x4e50,
	[8]byte{0xb4, 0x1f, 0x8a, 0x7f, 0x8b, 0xd8, 0x96, 0x0b}}

// comCall invokes a COM method by vtable slot.
func comCall(obj uintptr, slot uintptr, args ...uintptr) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	method := *(*uintptr)(unsafe.Pointer(vtbl + slot*unsafe.Sizeof(uintptr(0))))
	r, _, _ := syscall.SyscallN(method, append([]uintptr{obj}, args...)...)
	return r
}

func failed(hr uintptr) bool {
	return hr&0x80000000 != 0
}

func hrError(op string, hr uintptr) error {
	return fmt.Errorf("d3d11: %s: HRESULT 0x%08X", op, uint32(hr))
}

// FromNative adopts a raw ID3D11Device pointer, taking its own reference.
// The pointer typically comes from querying the EGL display for
// EGL_D3D11_DEVICE_ANGLE. Release the returned Device before the EGL
// context that produced the pointer is destroyed.
func FromNative(ptr uintptr) (Device, error) {
	if ptr == 0 {
		return nil, errors.New("d3d11: nil device pointer")
	}
	comCall(ptr, vtblAddRef)
	return &comDevice{ptr: ptr}, nil
}

type comDevice struct {
	ptr uintptr
}

func (d *comDevice) CreateTexture2D(desc *Texture2DDesc) (Texture2D, error) {
	var tex uintptr
	hr := comCall(d.ptr, vtblDeviceCreateTexture2D,
		uintptr(unsafe.Pointer(desc)), 0,
		uintptr(unsafe.Pointer(&tex)))
	if failed(hr) || tex == 0 {
		return nil, hrError("ID3D11Device::CreateTexture2D", hr)
	}
	return &comTexture2D{ptr: tex}, nil
}

func (d *comDevice) ImmediateContext() (DeviceContext, error) {
	var ctx uintptr
	// GetImmediateContext returns void and always AddRefs the context.
	comCall(d.ptr, vtblDeviceGetImmediateContext, uintptr(unsafe.Pointer(&ctx)))
	if ctx == 0 {
		return nil, errors.New("d3d11: device has no immediate context")
	}
	return &comDeviceContext{ptr: ctx}, nil
}

func (d *comDevice) Release() {
	if d.ptr != 0 {
		comCall(d.ptr, vtblRelease)
		d.ptr = 0
	}
}

type comDeviceContext struct {
	ptr uintptr
}

func (c *comDeviceContext) CopyResource(dst, src Texture2D) {
	comCall(c.ptr, vtblContextCopyResource, dst.NativePointer(), src.NativePointer())
}

func (c *comDeviceContext) Flush() {
	comCall(c.ptr, vtblContextFlush)
}

func (c *comDeviceContext) Release() {
	if c.ptr != 0 {
		comCall(c.ptr, vtblRelease)
		c.ptr = 0
	}
}

type comTexture2D struct {
	ptr uintptr
}

func (t *comTexture2D) SharedHandle() (SharedHandle, error) {
	var res uintptr
	hr := comCall(t.ptr, vtblQueryInterface,
		uintptr(unsafe.Pointer(&iidIDXGIResource)),
		uintptr(unsafe.Pointer(&res)))
	if failed(hr) || res == 0 {
		return 0, hrError("IDXGIResource query", hr)
	}
	defer comCall(res, vtblRelease)

	var h windows.Handle
	hr = comCall(res, vtblResourceGetSharedHandle, uintptr(unsafe.Pointer(&h)))
	if failed(hr) {
		return 0, hrError("IDXGIResource::GetSharedHandle", hr)
	}
	return SharedHandle(h), nil
}

func (t *comTexture2D) NativePointer() uintptr {
	return t.ptr
}

func (t *comTexture2D) Release() {
	if t.ptr != 0 {
		comCall(t.ptr, vtblRelease)
		t.ptr = 0
	}
}
