// Package angle manages the lifecycle of an ANGLE (EGL-on-Direct3D 11)
// rendering surface on Windows.
//
// # Overview
//
// angle stands up an EGL display and context pair backed by ANGLE's D3D11
// renderer, binds them to either an on-screen window surface or an
// off-screen surface backed by a shareable D3D11 texture, and hands
// completed frames to an external compositor through a DXGI shared handle.
// The package decides nothing about what gets rendered; it owns surface and
// context lifetime only.
//
// # Quick Start
//
//	m, err := angle.New()
//	if err != nil {
//		// No D3D11-capable display at any capability tier.
//	}
//	defer m.Destroy()
//
//	// Off-screen, texture-backed surface:
//	if err := m.CreateSurface(angle.Offscreen{}, 800, 600, false); err != nil {
//		// Surface unusable; destroy and retry.
//	}
//	m.SetPresentCallback(func(h d3d11.SharedHandle, width, height int) {
//		// Composite the shared texture.
//	})
//	m.MakeCurrent()
//	// ... draw ...
//	m.SwapBuffers()
//
// # Capability fallback
//
// Display bring-up tries ANGLE's D3D11 renderer at full feature level, then
// capped at feature level 9_3, then with the WARP software rasterizer
// attributes. Failures before the final tier are expected on older hardware
// and stay silent; only the last tier's failure is logged and returned.
//
// # Architecture
//
// The library is organized into:
//   - Public API: SurfaceManager, Target, TextureTarget, PresentResult
//   - egl: the EGL/ANGLE binding layer (libEGL.dll on Windows)
//   - d3d11: minimal Direct3D 11 interop (textures, shared handles)
//
// Both binding layers are interfaces, so the whole lifecycle is testable
// without a GPU.
//
// # Threading
//
// A SurfaceManager has no internal locking; one goroutine (locked to its
// OS thread) must own it. The resource context exists so a second thread
// can upload GPU resources sharing the primary context's namespace.
package angle
