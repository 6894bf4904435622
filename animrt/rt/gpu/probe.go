package gpu

import (
	"context"

	"github.com/cogentcore/webgpu/wgpu"
)

// Probe reports whether a hardware adapter can be acquired. It creates and
// releases its own instance, so it may run off the render thread.
func Probe(ctx context.Context) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	if ctx.Err() != nil {
		return false
	}
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil || adapter == nil {
		return false
	}
	adapter.Release()
	return ctx.Err() == nil
}
