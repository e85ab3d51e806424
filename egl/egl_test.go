// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package egl

import (
	"errors"
	"testing"
)

// TestErrorMessage tests that Error names the entry point and error code.
func TestErrorMessage(t *testing.T) {
	err := Error{Op: "eglChooseConfig", Code: BadConfig}

	if got, want := err.Error(), "egl: eglChooseConfig: EGL_BAD_CONFIG"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// TestErrorAs tests that a wrapped Error is recoverable with errors.As.
func TestErrorAs(t *testing.T) {
	var wrapped error = Error{Op: "eglSwapBuffers", Code: ContextLost}

	var eglErr Error
	if !errors.As(wrapped, &eglErr) {
		t.Fatal("errors.As failed to recover Error")
	}
	if eglErr.Code != ContextLost {
		t.Errorf("Code = %#x, want %#x", eglErr.Code, ContextLost)
	}
}

// TestErrorName tests symbolic names for the defined code range.
func TestErrorName(t *testing.T) {
	tests := []struct {
		code Int
		want string
	}{
		{Success, "EGL_SUCCESS"},
		{NotInitialized, "EGL_NOT_INITIALIZED"},
		{BadAlloc, "EGL_BAD_ALLOC"},
		{BadDisplay, "EGL_BAD_DISPLAY"},
		{BadNativeWindow, "EGL_BAD_NATIVE_WINDOW"},
		{ContextLost, "EGL_CONTEXT_LOST"},
		{0x9999, "EGL_UNKNOWN_ERROR"},
	}

	for _, tt := range tests {
		if got := ErrorName(tt.code); got != tt.want {
			t.Errorf("ErrorName(%#x) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

// TestNullHandles tests that zero values are the EGL_NO_* sentinels.
func TestNullHandles(t *testing.T) {
	if NoDisplay != 0 || NoConfig != 0 || NoContext != 0 || NoSurface != 0 {
		t.Error("null handles must be zero values")
	}

	var d Display
	if d != NoDisplay {
		t.Error("zero Display != NoDisplay")
	}
}
