// Package gpu draws the regular arrangements as a single instanced, indexed
// draw call per frame.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gekko3d/ambient/animrt/rt/geom"
	"github.com/gekko3d/ambient/animrt/rt/shaders"
)

// Renderer owns every hardware resource it creates. The pipeline and uniform
// buffer live as long as the renderer; geometry and instance buffers are
// released and recreated when the shape or instance set changes.
type Renderer struct {
	log   core.Logger
	label string

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	pipeline  *wgpu.RenderPipeline
	bindGroup *wgpu.BindGroup
	bufs      bufferSet
	depth     depthTarget
	camera    core.OrbitCamera

	indexCount    uint32
	instanceCount uint32
	released      bool
}

// New acquires an adapter and device for the surface described by desc and
// builds the pipeline. Any partially acquired resources are released on error.
func New(desc *wgpu.SurfaceDescriptor, width, height int, label string, log core.Logger) (*Renderer, error) {
	r := &Renderer{
		log:    core.OrNop(log),
		label:  label,
		camera: core.NewOrbitCamera(Center),
	}
	if err := r.init(desc, width, height); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) init(desc *wgpu.SurfaceDescriptor, width, height int) error {
	r.instance = wgpu.CreateInstance(nil)
	if r.instance == nil {
		return stageErr("instance", fmt.Errorf("CreateInstance returned nil"))
	}
	r.surface = r.instance.CreateSurface(desc)
	if r.surface == nil {
		return stageErr("surface", fmt.Errorf("CreateSurface returned nil"))
	}

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return stageErr("adapter", err)
	}
	if adapter == nil {
		return stageErr("adapter", ErrNoAdapter)
	}
	r.adapter = adapter

	r.device, err = adapter.RequestDevice(nil)
	if err != nil {
		return stageErr("device", err)
	}
	r.queue = r.device.GetQueue()
	r.bufs = bufferSet{device: r.device, queue: r.queue, label: r.label}

	caps := r.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return stageErr("surface", ErrNoFormat)
	}
	r.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(max(width, 1)),
		Height:      uint32(max(height, 1)),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.surface.Configure(adapter, r.device, r.config)

	if err := r.buildPipeline(); err != nil {
		return err
	}
	r.log.Infof("gpu: %s ready (%dx%d, %v)", r.label, r.config.Width, r.config.Height, r.config.Format)
	return nil
}

func (r *Renderer) buildPipeline() error {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "instanced",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.InstancedWGSL},
	})
	if err != nil {
		return stageErr("shader", err)
	}
	defer module.Release()

	vertexLayoutDesc, err := vertexLayout(geom.Vertex{}, wgpu.VertexStepModeVertex)
	if err != nil {
		return stageErr("pipeline", err)
	}
	instanceLayoutDesc, err := vertexLayout(Instance{}, wgpu.VertexStepModeInstance)
	if err != nil {
		return stageErr("pipeline", err)
	}

	r.pipeline, err = r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "instanced",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{vertexLayoutDesc, instanceLayoutDesc},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    r.config.Format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return stageErr("pipeline", err)
	}

	if _, err := r.bufs.ensure("uniforms", &r.bufs.Uniform, make([]byte, uniformSize), wgpu.BufferUsageUniform); err != nil {
		return err
	}
	r.bindGroup, err = r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "uniforms",
		Layout: r.pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  r.bufs.Uniform,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return stageErr("bind group", err)
	}
	return nil
}

// Resize reconfigures the surface and rebuilds the depth attachment.
func (r *Renderer) Resize(width, height int) error {
	if r.released {
		return ErrReleased
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	r.surface.Configure(r.adapter, r.device, r.config)
	return r.depth.ensure(r.device, r.config.Width, r.config.Height)
}

// SetShape replaces the vertex and index buffers with the mesh for shape.
func (r *Renderer) SetShape(shape core.Shape) error {
	if r.released {
		return ErrReleased
	}
	mesh := geom.Build(shape)
	vertices, err := encode(mesh.Vertices)
	if err != nil {
		return err
	}
	indices, err := encode(mesh.Indices)
	if err != nil {
		return err
	}
	r.bufs.dropGeometry()
	r.indexCount = 0
	if _, err := r.bufs.ensure("vertices", &r.bufs.Vertex, vertices, wgpu.BufferUsageVertex); err != nil {
		return err
	}
	if _, err := r.bufs.ensure("indices", &r.bufs.Index, indices, wgpu.BufferUsageIndex); err != nil {
		return err
	}
	r.indexCount = uint32(len(mesh.Indices))
	r.log.Debugf("gpu: %s geometry rebuilt, %d vertices %d indices", shape, len(mesh.Vertices), len(mesh.Indices))
	return nil
}

// SetInstances replaces the instance buffer with count instances laid out for a.
func (r *Renderer) SetInstances(count int, a core.Arrangement) error {
	if r.released {
		return ErrReleased
	}
	instances := BuildInstances(count, a)
	data, err := encode(instances)
	if err != nil {
		return err
	}
	r.bufs.dropInstances()
	r.instanceCount = 0
	if _, err := r.bufs.ensure("instances", &r.bufs.Instance, data, wgpu.BufferUsageVertex); err != nil {
		return err
	}
	r.instanceCount = uint32(len(instances))
	r.log.Debugf("gpu: %s instances rebuilt, %d", a, len(instances))
	return nil
}

// RenderFrame writes the uniforms for time t and issues one indexed, instanced draw.
func (r *Renderer) RenderFrame(t float64, p core.Params) error {
	if r.released {
		return ErrReleased
	}
	if r.indexCount == 0 || r.instanceCount == 0 {
		return nil
	}
	if err := r.depth.ensure(r.device, r.config.Width, r.config.Height); err != nil {
		return err
	}

	aspect := float32(r.config.Width) / float32(r.config.Height)
	data, err := encode(NewUniforms(r.camera, t, aspect, p))
	if err != nil {
		return err
	}
	if err := r.queue.WriteBuffer(r.bufs.Uniform, 0, data); err != nil {
		return fmt.Errorf("gpu: write uniforms: %w", err)
	}

	frame, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("gpu: acquire frame: %w", err)
	}
	defer frame.Release()
	view, err := frame.CreateView(nil)
	if err != nil {
		return fmt.Errorf("gpu: frame view: %w", err)
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("gpu: command encoder: %w", err)
	}
	defer encoder.Release()

	bg := p.BackgroundColor
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: bg.R, G: bg.G, B: bg.B, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.SetVertexBuffer(0, r.bufs.Vertex, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, r.bufs.Instance, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.bufs.Index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(r.indexCount, r.instanceCount, 0, 0, 0)
	if err := pass.End(); err != nil {
		return fmt.Errorf("gpu: end pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("gpu: finish: %w", err)
	}
	defer cmd.Release()
	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

// Counts returns the index and instance counts of the current draw.
func (r *Renderer) Counts() (indices, instances uint32) {
	return r.indexCount, r.instanceCount
}

// Release frees every hardware resource. It is safe to call more than once.
func (r *Renderer) Release() {
	if r.released {
		return
	}
	r.released = true
	r.depth.release()
	r.bufs.releaseAll()
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
	if r.adapter != nil {
		r.adapter.Release()
		r.adapter = nil
	}
	if r.surface != nil {
		r.surface.Release()
		r.surface = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
	r.indexCount, r.instanceCount = 0, 0
	r.log.Debugf("gpu: %s released", r.label)
}
