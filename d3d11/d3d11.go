// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package d3d11 provides the minimal Direct3D 11 interop layer the angle
// surface manager needs: adopting the device that ANGLE renders through,
// allocating shareable 2D textures, and copying between them.
//
// The package deliberately exposes interfaces rather than raw COM pointers
// so the surface lifecycle can be exercised without a GPU. The real
// implementation (Windows only) calls through the COM vtables directly;
// FromNative adopts the ID3D11Device pointer resolved from the EGL display.
package d3d11

import "errors"

// SharedHandle is an opaque DXGI shared handle identifying a texture
// across processes and APIs. Consumers treat it as identity only; opening
// it requires their own device-level reference counting.
type SharedHandle uintptr

// Texture formats (DXGI_FORMAT values).
const (
	// FormatB8G8R8A8Unorm is DXGI_FORMAT_B8G8R8A8_UNORM.
	FormatB8G8R8A8Unorm uint32 = 87
)

// Resource usage (D3D11_USAGE values).
const (
	// UsageDefault is D3D11_USAGE_DEFAULT: GPU read/write.
	UsageDefault uint32 = 0
)

// Bind flags (D3D11_BIND_FLAG values).
const (
	// BindShaderResource is D3D11_BIND_SHADER_RESOURCE.
	BindShaderResource uint32 = 0x8

	// BindRenderTarget is D3D11_BIND_RENDER_TARGET.
	BindRenderTarget uint32 = 0x20
)

// Misc flags (D3D11_RESOURCE_MISC_FLAG values).
const (
	// MiscShared is D3D11_RESOURCE_MISC_SHARED: the texture can be
	// opened by another device via its shared handle.
	MiscShared uint32 = 0x2
)

// Texture2DDesc mirrors D3D11_TEXTURE2D_DESC. Field order and widths
// match the C layout; the Windows implementation passes it to
// ID3D11Device::CreateTexture2D unmodified.
type Texture2DDesc struct {
	Width          uint32
	Height         uint32
	MipLevels      uint32
	ArraySize      uint32
	Format         uint32
	SampleCount    uint32 // DXGI_SAMPLE_DESC.Count
	SampleQuality  uint32 // DXGI_SAMPLE_DESC.Quality
	Usage          uint32
	BindFlags      uint32
	CPUAccessFlags uint32
	MiscFlags      uint32
}

// ErrNotSupported is returned by FromNative on non-Windows platforms.
var ErrNotSupported = errors.New("d3d11: not supported on this platform")

// Device is an ID3D11Device. Release must be called exactly once per
// reference; the zero lifetime rule is the caller's.
type Device interface {
	// CreateTexture2D allocates a 2D texture described by desc.
	CreateTexture2D(desc *Texture2DDesc) (Texture2D, error)

	// ImmediateContext returns the device's immediate context. The
	// returned context holds its own reference and must be released.
	ImmediateContext() (DeviceContext, error)

	// Release drops this reference on the device.
	Release()
}

// DeviceContext is an ID3D11DeviceContext.
type DeviceContext interface {
	// CopyResource copies the entire contents of src into dst. Both
	// textures must have identical dimensions and compatible formats.
	CopyResource(dst, src Texture2D)

	// Flush submits queued commands to the GPU.
	Flush()

	// Release drops this reference on the context.
	Release()
}

// Texture2D is an ID3D11Texture2D.
type Texture2D interface {
	// SharedHandle returns the texture's DXGI shared handle. It fails
	// when the texture was not created with MiscShared (or the driver
	// refuses to export one).
	SharedHandle() (SharedHandle, error)

	// NativePointer returns the raw ID3D11Texture2D pointer, suitable
	// for importing as an EGL client buffer.
	NativePointer() uintptr

	// Release drops this reference on the texture.
	Release()
}
