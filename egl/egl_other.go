// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !windows

package egl

// Default reports ErrNotSupported: the ANGLE-on-D3D11 runtime only exists
// on Windows. Non-Windows callers must inject their own API.
func Default() (API, error) {
	return nil, ErrNotSupported
}
