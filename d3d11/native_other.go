// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package d3d11

// FromNative reports ErrNotSupported: Direct3D 11 only exists on Windows.
// Non-Windows callers must inject their own Device implementation.
func FromNative(ptr uintptr) (Device, error) {
	return nil, ErrNotSupported
}
