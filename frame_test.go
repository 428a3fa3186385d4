package framehost_test

import (
	"errors"
	"testing"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend/headless"
)

func TestRenderFrame(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(320, 240))

	var views []*headless.View
	for range 3 {
		err := sc.RenderFrame(func(view framehost.TextureView, enc framehost.CommandEncoder) error {
			v := view.(*headless.View)
			views = append(views, v)
			enc.(*headless.Encoder).Record("clear")
			return nil
		})
		if err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
	}

	st := b.Stats()
	if st.Acquires != 3 || st.Submits != 3 || st.Presents != 3 || st.Discards != 0 {
		t.Errorf("stats = %+v", st)
	}
	for i, v := range views {
		if v.Frame != uint64(i+1) {
			t.Errorf("frame %d: view seq = %d", i, v.Frame)
		}
		if v.Size != (framehost.Size{Width: 320, Height: 240}) {
			t.Errorf("frame %d: view size = %s", i, v.Size)
		}
	}
	if sub := b.Submitted(); len(sub) != 3 || sub[0].Commands[0] != "clear" {
		t.Errorf("submitted = %+v", sub)
	}
}

func TestRenderFrameRecordFailure(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(8, 8))
	boom := errors.New("boom")

	err := sc.RenderFrame(func(framehost.TextureView, framehost.CommandEncoder) error {
		return boom
	})
	if err != boom {
		t.Fatalf("RenderFrame err = %v, want record error unchanged", err)
	}
	st := b.Stats()
	if st.Presents != 0 || st.Submits != 0 || st.Discards != 1 {
		t.Errorf("stats = %+v, want the frame discarded and nothing submitted", st)
	}
}

func TestRenderFrameRecordTaxonomy(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(8, 8))

	err := sc.RenderFrame(func(framehost.TextureView, framehost.CommandEncoder) error {
		return framehost.ErrSurfaceOutdated
	})
	if framehost.Classify(err) != framehost.RecoveryReconfigure {
		t.Errorf("Classify(%v) = %v, want reconfigure", err, framehost.Classify(err))
	}
}

func TestRenderFrameAcquireErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want framehost.Recovery
	}{
		{"lost", framehost.ErrSurfaceLost, framehost.RecoveryReconfigure},
		{"outdated", framehost.ErrSurfaceOutdated, framehost.RecoveryReconfigure},
		{"out of memory", framehost.ErrOutOfMemory, framehost.RecoveryExit},
		{"timeout", framehost.ErrTimeout, framehost.RecoverySkip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := headless.New(headless.Options{})
			sc := initialize(t, b, headless.NewWindow(8, 8))
			b.FailAcquire(tt.err)

			called := false
			err := sc.RenderFrame(func(framehost.TextureView, framehost.CommandEncoder) error {
				called = true
				return nil
			})
			if !errors.Is(err, tt.err) {
				t.Fatalf("RenderFrame err = %v, want %v", err, tt.err)
			}
			if called {
				t.Error("record called after failed acquisition")
			}
			if got := framehost.Classify(err); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
			if b.Stats().Presents != 0 {
				t.Error("frame presented after failed acquisition")
			}
		})
	}
}

func TestRenderFramePresentFailure(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(8, 8))
	b.FailPresent(framehost.ErrSurfaceLost)

	err := sc.RenderFrame(nil)
	if !errors.Is(err, framehost.ErrSurfaceLost) {
		t.Fatalf("RenderFrame err = %v, want ErrSurfaceLost", err)
	}
	if st := b.Stats(); st.Presents != 0 || st.Submits != 1 {
		t.Errorf("stats = %+v", st)
	}
}
