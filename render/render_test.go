package render

import (
	"context"
	"testing"
	"time"

	"github.com/SlawekNowy/UniRender-sub000/backend"
	"github.com/SlawekNowy/UniRender-sub000/scene"
	"golang.org/x/image/math/f32"
)

func newTestScene() *scene.Scene {
	ci := scene.NewCreateInfo()
	ci.DeviceType = scene.DeviceCPU
	return scene.NewScene(scene.RenderImage, ci)
}

func TestRendererRunsStubBackendToCompletion(t *testing.T) {
	s := newTestScene()
	r, err := Create(s, backend.BackendStub, backend.FlagNone)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer r.Close()

	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	_, _, status := r.GetProgress()
	if status != JobComplete {
		t.Errorf("GetProgress() status = %v, want JobComplete", status)
	}
}

func TestRendererUnknownBackend(t *testing.T) {
	s := newTestScene()
	if _, err := Create(s, "nonexistent", backend.FlagNone); err == nil {
		t.Error("Create() with an unregistered backend id should fail")
	}
}

func TestRendererPassDefaultsToZeroValue(t *testing.T) {
	s := newTestScene()
	r, err := Create(s, backend.BackendStub, backend.FlagNone)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer r.Close()

	buf := r.Pass(PassColor, EyeMono)
	if buf.Pixels != nil {
		t.Error("Pass() before any stage has written it should return the zero ImageBuffer")
	}
}

func TestRendererEnableProgressiveAttachesTileManager(t *testing.T) {
	s := newTestScene()
	s.Camera.SetResolution(64, 64)
	r, err := Create(s, backend.BackendStub, backend.FlagNone)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer r.Close()

	if r.ProgressiveTiles() != nil {
		t.Fatal("ProgressiveTiles() before EnableProgressive should be nil")
	}
	r.EnableProgressive(32, 32)
	if r.ProgressiveTiles() == nil {
		t.Fatal("ProgressiveTiles() after EnableProgressive should be non-nil")
	}
	if got := r.ProgressiveTiles().GetTileCount(); got != 4 {
		t.Errorf("GetTileCount() = %d, want 4", got)
	}
}

func TestImageBufferRoundTripFromFlatRGBA(t *testing.T) {
	flat := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
	}
	buf := FromFlatRGBA(2, 1, flat)
	if buf.Width != 2 || buf.Height != 1 {
		t.Fatalf("buf dims = %dx%d, want 2x1", buf.Width, buf.Height)
	}
	want := []f32.Vec4{{1, 2, 3, 4}, {5, 6, 7, 8}}
	for i, w := range want {
		if buf.Pixels[i] != w {
			t.Errorf("Pixels[%d] = %v, want %v", i, buf.Pixels[i], w)
		}
	}
}

func TestFlipBufferHorizontal(t *testing.T) {
	buf := NewImageBuffer(3, 1)
	buf.Pixels[0] = f32.Vec4{1, 0, 0, 0}
	buf.Pixels[1] = f32.Vec4{2, 0, 0, 0}
	buf.Pixels[2] = f32.Vec4{3, 0, 0, 0}

	flipBufferHorizontal(&buf)
	want := []float32{3, 2, 1}
	for i, w := range want {
		if buf.Pixels[i][0] != w {
			t.Errorf("Pixels[%d][0] = %v, want %v", i, buf.Pixels[i][0], w)
		}
	}
}

func TestFlipBufferVertical(t *testing.T) {
	buf := NewImageBuffer(1, 3)
	buf.Pixels[0] = f32.Vec4{1, 0, 0, 0}
	buf.Pixels[1] = f32.Vec4{2, 0, 0, 0}
	buf.Pixels[2] = f32.Vec4{3, 0, 0, 0}

	flipBufferVertical(&buf)
	want := []float32{3, 2, 1}
	for i, w := range want {
		if buf.Pixels[i][0] != w {
			t.Errorf("Pixels[%d][0] = %v, want %v", i, buf.Pixels[i][0], w)
		}
	}
}

func TestRgbaToRGBRoundTrip(t *testing.T) {
	buf := NewImageBuffer(2, 1)
	buf.Pixels[0] = f32.Vec4{0.25, 0.5, 0.75, 1}
	buf.Pixels[1] = f32.Vec4{-1, 2, 3.5, 1}

	img := rgbaToRGB(buf)
	back := rgbFromRGB(img, 2, 1, buf)

	for i := range buf.Pixels {
		for c := 0; c < 3; c++ {
			if back.Pixels[i][c] != buf.Pixels[i][c] {
				t.Errorf("pixel %d channel %d = %v, want %v", i, c, back.Pixels[i][c], buf.Pixels[i][c])
			}
		}
		if back.Pixels[i][3] != buf.Pixels[i][3] {
			t.Errorf("pixel %d alpha = %v, want preserved %v", i, back.Pixels[i][3], buf.Pixels[i][3])
		}
	}
}

func TestStageString(t *testing.T) {
	if got := StageDenoise.String(); got != "denoise" {
		t.Errorf("StageDenoise.String() = %q, want %q", got, "denoise")
	}
	if got := Stage(255).String(); got != "unknown" {
		t.Errorf("Stage(255).String() = %q, want %q", got, "unknown")
	}
}
