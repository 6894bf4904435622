package ambient

import (
	"context"
	"image"
	"time"
)

// HeadlessHost drives a fixed number of software frames without a display.
// It backs the render and bench commands and the tests.
type HeadlessHost struct {
	Width, Height int
	DPR           float64
	Frames        int
	// Interval is the simulated time reported between frames.
	Interval time.Duration
	// Capture, when set, receives every presented frame.
	Capture func(index int, img image.Image, status string) error

	presented int
	last      image.Image
}

func NewHeadlessHost(width, height, frames int) *HeadlessHost {
	return &HeadlessHost{
		Width:    width,
		Height:   height,
		DPR:      1,
		Frames:   frames,
		Interval: time.Second / 60,
	}
}

func (h *HeadlessHost) Size() (int, int, float64) { return h.Width, h.Height, h.DPR }

func (h *HeadlessHost) Supports(mode RendererMode) bool { return mode == ModeSoftware }

func (h *HeadlessHost) Run(ctx context.Context, frame func(now time.Duration) bool) error {
	var now time.Duration
	for i := 0; i < h.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !frame(now) {
			return nil
		}
		now += h.Interval
	}
	return nil
}

func (h *HeadlessHost) Present(img image.Image, status string) error {
	h.last = img
	i := h.presented
	h.presented++
	if h.Capture != nil {
		return h.Capture(i, img, status)
	}
	return nil
}

// Presented is the number of frames shown so far.
func (h *HeadlessHost) Presented() int { return h.presented }

// Last is the most recent presented frame.
func (h *HeadlessHost) Last() image.Image { return h.last }
