package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend/halgpu"
	"github.com/gogpu/framehost/backend/headless"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// clearMode clears the surface to a color whose brightness pulses over
// time. Space pauses the animation.
type clearMode struct {
	framehost.BaseMode

	base    [4]float64
	elapsed time.Duration
	paused  bool
}

func newClearMode(color [4]float64) *clearMode {
	return &clearMode{base: color}
}

// clearModeFactory returns the constructor the host uses for the clear mode.
func clearModeFactory(color [4]float64) framehost.ModeFactory {
	return func(_ context.Context, sc *framehost.SurfaceContext) (framehost.Mode, error) {
		if sc == nil {
			return nil, fmt.Errorf("clear: nil surface context")
		}
		return newClearMode(color), nil
	}
}

func (m *clearMode) Input(ev framehost.Event) bool {
	if k, ok := ev.(framehost.KeyboardInput); ok && k.State == framehost.Pressed && k.Key == gpucontext.KeySpace {
		m.paused = !m.paused
		return true
	}
	return false
}

func (m *clearMode) Update(dt time.Duration, _ *framehost.SurfaceContext) {
	if !m.paused {
		m.elapsed += dt
	}
}

// color returns the clear color for the current time.
func (m *clearMode) color() gputypes.Color {
	pulse := 0.75 + 0.25*math.Sin(m.elapsed.Seconds()*2)
	return gputypes.Color{
		R: m.base[0] * pulse,
		G: m.base[1] * pulse,
		B: m.base[2] * pulse,
		A: m.base[3],
	}
}

func (m *clearMode) Render(f *framehost.Frame) error {
	c := m.color()
	if enc, ok := halgpu.EncoderOf(f.Encoder); ok {
		view, ok := halgpu.ViewOf(f.View)
		if !ok {
			return fmt.Errorf("clear: unexpected view %T", f.View)
		}
		pass := enc.BeginRenderPass(&hal.RenderPassDescriptor{
			Label: "clear_pass",
			ColorAttachments: []hal.RenderPassColorAttachment{{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: c,
			}},
		})
		pass.End()
		return nil
	}
	if enc, ok := f.Encoder.(*headless.Encoder); ok {
		enc.Record(fmt.Sprintf("clear %.3f %.3f %.3f %.3f", c.R, c.G, c.B, c.A))
		return nil
	}
	return fmt.Errorf("clear: unsupported encoder %T", f.Encoder)
}
