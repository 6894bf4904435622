package ambient

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrHostMismatch is returned by Drive when the engine switches to a mode
// the host has no target for.
var ErrHostMismatch = errors.New("ambient: host cannot present the current renderer mode")

// Host owns one drawable target and schedules one callback per refresh.
// Size reports the layout box in CSS pixels and the device pixel ratio.
type Host interface {
	Size() (width, height int, dpr float64)
	Supports(mode RendererMode) bool
	Run(ctx context.Context, frame func(now time.Duration) bool) error
}

// Presenter is implemented by hosts that display software frames.
type Presenter interface {
	Present(img image.Image, status string) error
}

// Commander is implemented by hosts that translate input into commands.
type Commander interface {
	OnCommand(handler func(Command))
}

// Drive runs e on host until ctx is done, the host stops, the user quits or
// the engine moves to a mode the host cannot present.
func Drive(ctx context.Context, host Host, e *Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if c, ok := host.(Commander); ok {
		c.OnCommand(func(cmd Command) {
			if cmd == CmdQuit {
				cancel()
				return
			}
			hardwareOnly := !host.Supports(ModeSoftware)
			if err := e.SetParams(cmd.Apply(e.Params(), hardwareOnly)); err != nil {
				e.log.Debugf("command %d ignored: %v", cmd, err)
			}
		})
	}
	presenter, _ := host.(Presenter)

	timer := NewFrameTimer(time.Now())
	var lastW, lastH int
	var lastDPR float64
	var result error
	err := host.Run(ctx, func(time.Duration) bool {
		if ctx.Err() != nil {
			return false
		}
		if w, h, dpr := host.Size(); w != lastW || h != lastH || dpr != lastDPR {
			lastW, lastH, lastDPR = w, h, dpr
			if err := e.Resize(float64(w), float64(h), dpr); err != nil {
				result = err
				return false
			}
		}
		timer.Tick(time.Now())
		if err := e.Frame(); err != nil {
			result = err
			return false
		}
		mode := e.Mode()
		if mode != ModeUnresolved && !host.Supports(mode) {
			result = fmt.Errorf("%w: %s", ErrHostMismatch, mode)
			return false
		}
		if mode == ModeSoftware && presenter != nil {
			if err := presenter.Present(e.Image(), statusLine(e, timer.FPS())); err != nil {
				result = err
				return false
			}
		}
		return true
	})
	if result != nil {
		return result
	}
	if err != nil {
		return err
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

func statusLine(e *Engine, fps float64) string {
	s := e.Stats()
	line := fmt.Sprintf("%s  %s  n=%d  %s  %.0f fps", s.Arrangement, e.params.Shape, s.Population, s.Mode, fps)
	if r := e.FallbackReason(); r != "" {
		line += " (" + r + ")"
	}
	return line
}
