package ambient

import (
	"context"
	"time"

	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/ambient/animrt/rt/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GlfwHost is the hardware target: a GLFW window whose surface belongs to
// the instanced renderer and nothing else. glfw calls must stay on the
// goroutine that created the host, which must be locked to its OS thread.
type GlfwHost struct {
	window  *glfw.Window
	log     Logger
	handler func(Command)
}

func NewGlfwHost(width, height int, title string, log Logger) (*GlfwHost, error) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "ambient"
	}
	if err := glfw.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	h := &GlfwHost{window: window, log: orNop(log)}
	window.SetKeyCallback(h.onKey)
	h.log.Infof("window %dx%d '%s' created", width, height, title)
	return h, nil
}

// Factory builds gpu renderers on this window's surface.
func (h *GlfwHost) Factory() HardwareFactory {
	return func(width, height int, label string, log Logger) (HardwareRenderer, error) {
		r, err := gpu.New(wgpuglfw.GetSurfaceDescriptor(h.window), width, height, label, log)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// Size reports the window size in screen coordinates and the content scale.
func (h *GlfwHost) Size() (int, int, float64) {
	w, hgt := h.window.GetSize()
	sx, _ := h.window.GetContentScale()
	if fw, _ := h.window.GetFramebufferSize(); w > 0 && fw > w {
		sx = float32(fw) / float32(w)
	}
	return w, hgt, float64(sx)
}

func (h *GlfwHost) Supports(mode RendererMode) bool { return mode == ModeHardware }

func (h *GlfwHost) OnCommand(handler func(Command)) { h.handler = handler }

func (h *GlfwHost) Run(ctx context.Context, frame func(now time.Duration) bool) error {
	start := time.Now()
	for !h.window.ShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		glfw.PollEvents()
		if w, hgt := h.window.GetFramebufferSize(); w == 0 || hgt == 0 {
			// minimised
			glfw.WaitEventsTimeout(0.1)
			continue
		}
		if !frame(time.Since(start)) {
			return nil
		}
	}
	return nil
}

// Hide removes the window from screen once hardware rendering is released.
func (h *GlfwHost) Hide() { h.window.Hide() }

func (h *GlfwHost) Close() {
	h.window.Destroy()
	glfw.Terminate()
}

func (h *GlfwHost) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	var cmd Command
	switch key {
	case glfw.KeyEscape, glfw.KeyQ:
		cmd = CmdQuit
		w.SetShouldClose(true)
	case glfw.KeyRight, glfw.KeyN:
		cmd = CmdNextArrangement
	case glfw.KeyLeft, glfw.KeyP:
		cmd = CmdPrevArrangement
	case glfw.KeyS:
		cmd = CmdNextShape
	case glfw.KeyUp, glfw.KeyEqual, glfw.KeyKPAdd:
		cmd = CmdMore
	case glfw.KeyDown, glfw.KeyMinus, glfw.KeyKPSubtract:
		cmd = CmdLess
	case glfw.KeyRightBracket:
		cmd = CmdFaster
	case glfw.KeyLeftBracket:
		cmd = CmdSlower
	}
	if cmd != CmdNone && h.handler != nil {
		h.handler(cmd)
	}
}
