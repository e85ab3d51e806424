package angle

import (
	"github.com/gogpu/angle/d3d11"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// GPUContextProvider exposes the manager's rendering state as a
// gpucontext.DeviceProvider, so compositors written against that
// interface can consume texture-backed frames without knowing the
// surfaces are ANGLE-managed.
//
// The provider borrows the manager's device; it stays valid until the
// manager is destroyed.
func (m *SurfaceManager) GPUContextProvider() gpucontext.DeviceProvider {
	return &deviceProvider{manager: m}
}

type deviceProvider struct {
	manager *SurfaceManager
}

func (p *deviceProvider) Device() gpucontext.Device {
	device, err := p.manager.GetDevice()
	if err != nil {
		Logger().Error("angle: resolving device for provider", "err", err)
		return nil
	}
	return &contextDevice{device: device}
}

func (p *deviceProvider) Queue() gpucontext.Queue {
	return contextQueue{}
}

func (p *deviceProvider) Adapter() gpucontext.Adapter {
	return contextAdapter{}
}

// AdapterInfo reports nothing: ANGLE resolves the adapter behind the
// EGL display and exposes no enumeration to describe it.
func (p *deviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{}
}

func (p *deviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// contextDevice is the concrete device handed out through the provider.
// gpucontext.Device carries no methods of its own; consumers that want to
// drive the D3D11 device assert this type.
type contextDevice struct {
	device d3d11.Device
}

// Poll flushes the immediate context so pending work reaches the GPU.
// Direct3D has no userspace completion queue to drain, so wait is
// ignored.
func (d *contextDevice) Poll(wait bool) {
	ctx, err := d.device.ImmediateContext()
	if err != nil {
		return
	}
	ctx.Flush()
	ctx.Release()
}

// Destroy is a no-op: the surface manager owns the device and releases
// it during teardown.
func (d *contextDevice) Destroy() {}

type contextQueue struct{}

type contextAdapter struct{}
