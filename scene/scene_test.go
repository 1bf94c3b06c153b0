package scene

import (
	"testing"

	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/modelcache"
	"github.com/SlawekNowy/UniRender-sub000/udm"
)

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(RenderImage, NewCreateInfo())
	if s.Camera == nil {
		t.Fatal("NewScene should populate a default Camera")
	}
	if s.Camera.Width != 1280 || s.Camera.Height != 720 {
		t.Errorf("default camera resolution = %dx%d, want 1280x720", s.Camera.Width, s.Camera.Height)
	}
	if s.CreateInfo.DeviceType != DeviceGPU {
		t.Errorf("NewCreateInfo DeviceType = %v, want DeviceGPU", s.CreateInfo.DeviceType)
	}
	if !s.CreateInfo.Progressive {
		t.Error("NewCreateInfo should default to Progressive")
	}
}

func TestRenderModeIsBakeMode(t *testing.T) {
	tests := []struct {
		mode RenderMode
		want bool
	}{
		{RenderImage, false},
		{RenderBakeAmbientOcclusion, true},
		{RenderBakeNormals, true},
		{RenderBakeDiffuseLighting, true},
		{RenderSceneAlbedo, false},
		{RenderSceneNormals, false},
		{RenderSceneDepth, false},
	}
	for _, tt := range tests {
		if got := tt.mode.IsBakeMode(); got != tt.want {
			t.Errorf("RenderMode(%d).IsBakeMode() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestSceneMergedModelCacheOrder(t *testing.T) {
	s := NewScene(RenderImage, NewCreateInfo())

	mesh1 := unirender.NewMesh("mesh1", 3, 1, 0)
	mc1 := modelcache.NewModelCache()
	chunk1 := mc1.AddChunk(modelcache.NewShaderCache())
	chunk1.AddObject(unirender.NewObject(mesh1))

	mesh2 := unirender.NewMesh("mesh2", 3, 1, 0)
	mc2 := modelcache.NewModelCache()
	chunk2 := mc2.AddChunk(modelcache.NewShaderCache())
	chunk2.AddObject(unirender.NewObject(mesh2))

	s.AddModelCache(mc1)
	s.AddModelCache(mc2)

	if got := len(s.ModelCaches()); got != 2 {
		t.Fatalf("ModelCaches() len = %d, want 2", got)
	}

	merged := s.MergedModelCache()
	if got := len(merged.Chunks); got != 2 {
		t.Fatalf("MergedModelCache chunk count = %d, want 2", got)
	}
	if merged.Chunks[0] != chunk1 || merged.Chunks[1] != chunk2 {
		t.Error("MergedModelCache chunks are not in addition order chunk1, chunk2")
	}
}

func TestSceneEncodeDecodeRoundTrip(t *testing.T) {
	s := NewScene(RenderImage, NewCreateInfo())
	s.SetSky("sky.hdr", unirender.Vector3{X: 0, Y: 90, Z: 0}, 2.5)
	s.AddLight(NewLight(LightPoint))
	s.CreateInfo.TransparentSky = true
	s.CreateInfo.ColorTransform = "Filmic"

	enc := udm.NewEncoder()
	s.Encode(enc)

	dec := udm.NewDecoder(enc.Bytes())
	got := DecodeScene(dec)

	if got.Info.Sky != "sky.hdr" {
		t.Errorf("Sky = %q, want %q", got.Info.Sky, "sky.hdr")
	}
	if got.Info.SkyStrength != 2.5 {
		t.Errorf("SkyStrength = %v, want 2.5", got.Info.SkyStrength)
	}
	if len(got.Lights) != 1 {
		t.Fatalf("Lights len = %d, want 1", len(got.Lights))
	}
	if !got.CreateInfo.TransparentSky {
		t.Error("TransparentSky did not round-trip")
	}
	if got.CreateInfo.ColorTransform != "Filmic" {
		t.Errorf("ColorTransform = %q, want %q", got.CreateInfo.ColorTransform, "Filmic")
	}
}

func TestCameraAspectRatio(t *testing.T) {
	c := NewCamera()
	c.SetResolution(1920, 1080)
	want := float32(1920) / float32(1080)
	if got := c.AspectRatio(); got != want {
		t.Errorf("AspectRatio() = %v, want %v", got, want)
	}

	c.SetResolution(100, 0)
	if got := c.AspectRatio(); got != 0 {
		t.Errorf("AspectRatio() with zero height = %v, want 0", got)
	}
}

func TestLightDefaults(t *testing.T) {
	l := NewLight(LightPoint)
	if l.Intensity != 1600 {
		t.Errorf("default Intensity = %v, want 1600", l.Intensity)
	}
	if l.Size != 1 {
		t.Errorf("default Size = %v, want 1", l.Size)
	}
}
