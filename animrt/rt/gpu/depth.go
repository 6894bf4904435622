package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

// depthTarget caches the depth attachment and rebuilds it only when the
// surface size changes.
type depthTarget struct {
	tex    *wgpu.Texture
	view   *wgpu.TextureView
	w, h   uint32
	builds int
}

func (d *depthTarget) stale(w, h uint32) bool {
	return d.view == nil || d.w != w || d.h != h
}

func (d *depthTarget) ensure(device *wgpu.Device, w, h uint32) error {
	if !d.stale(w, h) {
		return nil
	}
	d.release()
	if w == 0 || h == 0 {
		return ErrZeroTarget
	}
	tex, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "ambient depth",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return stageErr("depth texture", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return stageErr("depth view", err)
	}
	d.tex, d.view, d.w, d.h = tex, view, w, h
	d.builds++
	return nil
}

func (d *depthTarget) release() {
	if d.view != nil {
		d.view.Release()
		d.view = nil
	}
	if d.tex != nil {
		d.tex.Release()
		d.tex = nil
	}
}
