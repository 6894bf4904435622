package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bufferSet owns the vertex, index, instance and uniform buffers.
type bufferSet struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	label  string

	Vertex   *wgpu.Buffer
	Index    *wgpu.Buffer
	Instance *wgpu.Buffer
	Uniform  *wgpu.Buffer
}

// ensure writes data into *buf, allocating it first when missing or too small.
// It reports whether a new buffer was created.
func (b *bufferSet) ensure(name string, buf **wgpu.Buffer, data []byte, usage wgpu.BufferUsage) (bool, error) {
	neededSize := uint64(len(data))
	if neededSize%4 != 0 {
		neededSize += 4 - (neededSize % 4)
	}
	if neededSize == 0 {
		neededSize = 4
	}

	created := false
	current := *buf
	if current == nil || current.GetSize() < neededSize {
		release(buf)
		nb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: b.label + " " + name,
			Size:  neededSize,
			Usage: usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return false, stageErr("buffer "+name, err)
		}
		*buf = nb
		created = true
	}
	if len(data) > 0 {
		if err := b.queue.WriteBuffer(*buf, 0, pad4(data)); err != nil {
			return created, stageErr("write "+name, err)
		}
	}
	return created, nil
}

func pad4(data []byte) []byte {
	if r := len(data) % 4; r != 0 {
		return append(data, make([]byte, 4-r)...)
	}
	return data
}

func release(buf **wgpu.Buffer) {
	if *buf != nil {
		(*buf).Release()
		*buf = nil
	}
}

// dropGeometry releases the vertex and index buffers.
func (b *bufferSet) dropGeometry() {
	release(&b.Vertex)
	release(&b.Index)
}

func (b *bufferSet) dropInstances() {
	release(&b.Instance)
}

func (b *bufferSet) releaseAll() {
	b.dropGeometry()
	b.dropInstances()
	release(&b.Uniform)
}
