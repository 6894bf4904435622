package ambient

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

const (
	// termOversample is how many canvas pixels map onto one cell column.
	termOversample = 4
	halfBlock      = '▀'
)

// TermPresenter shows software frames in a terminal. Each cell carries two
// vertical pixels: the upper in the foreground of a half block and the lower
// in its background. The bottom row is a status line.
type TermPresenter struct {
	screen tcell.Screen
	log    Logger
	fps    time.Duration

	mu      sync.Mutex
	handler func(Command)
	scratch *image.RGBA

	readers   sync.WaitGroup
	closeOnce sync.Once
}

func NewTermPresenter(screen tcell.Screen, log Logger) (*TermPresenter, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.Clear()
	return &TermPresenter{screen: screen, log: orNop(log), fps: time.Second / 30}, nil
}

// Close restores the terminal. It is safe to call more than once.
func (t *TermPresenter) Close() { t.closeOnce.Do(t.screen.Fini) }

func (t *TermPresenter) OnCommand(handler func(Command)) {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()
}

// cells is the drawable area: every column, every row but the status line.
func (t *TermPresenter) cells() (int, int) {
	cols, rows := t.screen.Size()
	return max(cols, 1), max(rows-1, 1)
}

func (t *TermPresenter) Size() (int, int, float64) {
	cols, rows := t.cells()
	return cols * termOversample, rows * 2 * termOversample, 1
}

func (t *TermPresenter) Supports(mode RendererMode) bool { return mode == ModeSoftware }

func (t *TermPresenter) Run(ctx context.Context, frame func(now time.Duration) bool) error {
	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 32)
	t.readers.Add(1)
	go func() {
		defer t.readers.Done()
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(t.fps)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			t.handle(ev)
		case <-ticker.C:
			if !frame(time.Since(start)) {
				return nil
			}
		}
	}
}

func (t *TermPresenter) handle(ev tcell.Event) {
	var cmd Command
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
		return
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			cmd = CmdQuit
		case tcell.KeyRight:
			cmd = CmdNextArrangement
		case tcell.KeyLeft:
			cmd = CmdPrevArrangement
		case tcell.KeyUp:
			cmd = CmdMore
		case tcell.KeyDown:
			cmd = CmdLess
		case tcell.KeyRune:
			cmd = CommandForRune(ev.Rune())
		}
	}
	if cmd == CmdNone {
		return
	}
	t.mu.Lock()
	h := t.handler
	t.mu.Unlock()
	if h != nil {
		h(cmd)
	}
}

// Present downsamples img onto the cell grid and draws status on the last row.
func (t *TermPresenter) Present(img image.Image, status string) error {
	if img == nil {
		return nil
	}
	cols, rows := t.cells()
	bounds := image.Rect(0, 0, cols, rows*2)
	if t.scratch == nil || t.scratch.Bounds() != bounds {
		t.scratch = image.NewRGBA(bounds)
	}
	draw.ApproxBiLinear.Scale(t.scratch, bounds, img, img.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := t.scratch.RGBAAt(x, 2*y)
			bottom := t.scratch.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(status)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		t.screen.SetContent(x, rows, r, nil, statusStyle)
	}
	t.screen.Show()
	return nil
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
