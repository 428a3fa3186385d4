package framehost_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend/headless"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func initialize(t *testing.T, b *headless.Backend, w *headless.Window, opts ...framehost.SurfaceOption) *framehost.SurfaceContext {
	t.Helper()
	sc, err := framehost.Initialize(context.Background(), b, w, opts...)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(sc.Release)
	return sc
}

func TestInitializeConfiguresSurface(t *testing.T) {
	b := headless.New(headless.Options{
		Formats: []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm},
	})
	w := headless.NewWindow(800, 600)
	sc := initialize(t, b, w)

	cfg := sc.Config()
	if cfg.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want first reported format", cfg.Format)
	}
	if cfg.Size() != (framehost.Size{Width: 800, Height: 600}) {
		t.Errorf("config size = %s", cfg.Size())
	}
	if cfg.Usage&gputypes.TextureUsageRenderAttachment == 0 {
		t.Error("usage lacks RenderAttachment")
	}
	if cfg.PresentMode != framehost.PresentModeFifo || cfg.AlphaMode != framehost.AlphaModeAuto {
		t.Errorf("present=%s alpha=%s", cfg.PresentMode, cfg.AlphaMode)
	}
	if len(cfg.ViewFormats) != 1 || cfg.ViewFormats[0] != cfg.Format {
		t.Errorf("ViewFormats = %v", cfg.ViewFormats)
	}
	if !sc.Configured() || sc.Size() != cfg.Size() {
		t.Errorf("configured=%v size=%s", sc.Configured(), sc.Size())
	}
	if sc.AdapterName() != "headless" {
		t.Errorf("AdapterName = %q", sc.AdapterName())
	}
	if sc.SurfaceFormat() != cfg.Format {
		t.Errorf("SurfaceFormat = %v", sc.SurfaceFormat())
	}
	if sc.HalDevice() != nil || sc.HalQueue() != nil {
		t.Error("headless backend exposed a HAL device")
	}

	st := b.Stats()
	if st.Configures != 1 || st.LastConfig.Size() != cfg.Size() {
		t.Errorf("stats = %+v", st)
	}
}

func TestSurfaceContextAdapterInfo(t *testing.T) {
	b := headless.New(headless.Options{AdapterName: "ci-adapter"})
	sc := initialize(t, b, headless.NewWindow(8, 8))

	var provider gpucontext.DeviceProvider = sc
	info := provider.AdapterInfo()
	if info.Name != "ci-adapter" || info.Type != gpucontext.AdapterTypeSoftware {
		t.Errorf("AdapterInfo = %+v", info)
	}
	if provider.Device() == nil || provider.Queue() == nil || provider.Adapter() == nil {
		t.Error("DeviceProvider returned nil handles")
	}
}

func TestInitializeOptions(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(10, 10),
		framehost.WithPresentMode(framehost.PresentModeImmediate),
		framehost.WithAlphaMode(framehost.AlphaModeOpaque),
		framehost.WithUsage(gputypes.TextureUsageCopySrc))

	cfg := sc.Config()
	if cfg.PresentMode != framehost.PresentModeImmediate || cfg.AlphaMode != framehost.AlphaModeOpaque {
		t.Errorf("present=%s alpha=%s", cfg.PresentMode, cfg.AlphaMode)
	}
	want := gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc
	if cfg.Usage != want {
		t.Errorf("Usage = %v, want %v", cfg.Usage, want)
	}
}

func TestInitializeZeroSizeWindow(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(0, 600))
	if sc.Configured() {
		t.Error("zero-size window configured the surface")
	}
	if b.Stats().Configures != 0 {
		t.Errorf("Configures = %d, want 0", b.Stats().Configures)
	}
	if err := sc.RenderFrame(nil); !errors.Is(err, framehost.ErrSurfaceUnconfigured) {
		t.Errorf("RenderFrame = %v, want ErrSurfaceUnconfigured", err)
	}
	if err := sc.Resize(framehost.Size{Width: 640, Height: 480}); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if !sc.Configured() {
		t.Error("Resize did not configure the surface")
	}
}

func TestInitializeErrors(t *testing.T) {
	ctx := context.Background()
	w := headless.NewWindow(8, 8)
	tests := []struct {
		name string
		b    framehost.Backend
		win  framehost.Window
		want error
	}{
		{"nil backend", nil, w, framehost.ErrNilBackend},
		{"nil window", headless.New(headless.Options{}), nil, framehost.ErrNilWindow},
		{"no adapter", headless.New(headless.Options{NoAdapter: true}), w, framehost.ErrNoAdapter},
		{"no device", headless.New(headless.Options{DeviceErr: headless.ErrInjected}), w, framehost.ErrNoDevice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := framehost.Initialize(ctx, tt.b, tt.win)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Initialize err = %v, want %v", err, tt.want)
			}
			if sc != nil {
				t.Error("Initialize returned a context on error")
			}
		})
	}
}

func TestInitializeConfigureFailure(t *testing.T) {
	b := headless.New(headless.Options{})
	b.FailConfigure(framehost.ErrOutOfMemory)
	_, err := framehost.Initialize(context.Background(), b, headless.NewWindow(8, 8))
	if !errors.Is(err, framehost.ErrOutOfMemory) {
		t.Fatalf("Initialize err = %v, want ErrOutOfMemory", err)
	}
}

func TestResize(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(800, 600))

	for _, s := range []framehost.Size{{Width: 400, Height: 300}, {Width: 1, Height: 1}, {Width: 1920, Height: 1080}} {
		if err := sc.Resize(s); err != nil {
			t.Fatalf("Resize(%s): %v", s, err)
		}
		if sc.Size() != s || sc.Config().Size() != s {
			t.Errorf("after Resize(%s): size=%s config=%s", s, sc.Size(), sc.Config().Size())
		}
		if got := b.Stats().LastConfig.Size(); got != s {
			t.Errorf("backend config = %s, want %s", got, s)
		}
	}
}

func TestResizeZeroIsNoop(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(400, 300))
	before := b.Stats().Configures

	for _, s := range []framehost.Size{{Width: 0, Height: 150}, {Width: 150, Height: 0}, {}} {
		if err := sc.Resize(s); err != nil {
			t.Fatalf("Resize(%s): %v", s, err)
		}
	}
	if b.Stats().Configures != before {
		t.Errorf("Configures = %d, want %d", b.Stats().Configures, before)
	}
	if sc.Size() != (framehost.Size{Width: 400, Height: 300}) {
		t.Errorf("Size = %s, want 400x300", sc.Size())
	}
}

func TestResizeFailureKeepsConfig(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(400, 300))
	b.FailConfigure(nil)

	if err := sc.Resize(framehost.Size{Width: 10, Height: 10}); !errors.Is(err, headless.ErrInjected) {
		t.Fatalf("Resize err = %v, want ErrInjected", err)
	}
	if sc.Size() != (framehost.Size{Width: 400, Height: 300}) || sc.Config().Width != 400 {
		t.Errorf("size=%s config=%s after failed resize", sc.Size(), sc.Config().Size())
	}
}

func TestResizeDoesNotAliasConfig(t *testing.T) {
	b := headless.New(headless.Options{})
	sc := initialize(t, b, headless.NewWindow(4, 4))
	cfg := sc.Config()
	cfg.ViewFormats[0] = gputypes.TextureFormatUndefined
	if sc.Config().ViewFormats[0] == gputypes.TextureFormatUndefined {
		t.Error("Config() aliases internal ViewFormats")
	}
}

func TestRelease(t *testing.T) {
	b := headless.New(headless.Options{})
	sc, err := framehost.Initialize(context.Background(), b, headless.NewWindow(4, 4))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	sc.Release()
	sc.Release()

	st := b.Stats()
	if !st.Destroyed || st.Unconfigures != 1 {
		t.Errorf("destroyed=%v unconfigures=%d", st.Destroyed, st.Unconfigures)
	}
}
