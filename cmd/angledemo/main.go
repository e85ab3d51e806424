//go:build windows

// Command angledemo opens a native window and drives an ANGLE-managed
// EGL surface over it: create, present in a loop, resize with the
// window, tear down.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/angle"
)

func init() {
	// EGL contexts are bound per thread; the render loop must stay on one.
	runtime.LockOSThread()
}

func main() {
	var (
		width   = flag.Int("width", 800, "window width")
		height  = flag.Int("height", 600, "window height")
		verbose = flag.Bool("v", false, "log EGL activity to stderr")
	)
	flag.Parse()

	if *verbose {
		angle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// ANGLE owns the GL context; GLFW must not create one of its own.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(*width, *height, "angledemo", nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer win.Destroy()

	manager, err := angle.New()
	if err != nil {
		log.Fatalf("Failed to create surface manager: %v", err)
	}
	defer manager.Destroy()

	hwnd := uintptr(unsafe.Pointer(win.GetWin32Window()))
	fbWidth, fbHeight := win.GetFramebufferSize()
	if err := manager.CreateSurface(angle.Window{Handle: hwnd}, fbWidth, fbHeight, true); err != nil {
		log.Fatalf("Failed to create surface: %v", err)
	}
	defer manager.DestroySurface()

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		manager.ResizeSurface(angle.Window{Handle: hwnd}, w, h, true)
	})

	for !win.ShouldClose() {
		glfw.PollEvents()

		if err := manager.MakeCurrent(); err != nil {
			log.Fatalf("Failed to make surface current: %v", err)
		}
		if _, err := manager.SwapBuffers(); err != nil {
			log.Printf("Present failed: %v", err)
		}
	}
}
