package tile

import (
	"testing"
	"time"
)

func newTestTile(index, x, y, w, h int, sample uint16) TileData {
	return TileData{
		X: x, Y: y, W: w, H: h,
		Sample: sample,
		Index:  index,
		Bytes:  make([]float32, w*h*4),
	}
}

// drainRendered polls GetRenderedTileBatch-adjacent state until n
// tiles have been counted or the timeout elapses, accumulating whatever
// batches arrive so callers can inspect the union.
func drainRendered(t *testing.T, m *Manager, want int, timeout time.Duration) []TileData {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var all []TileData
	for time.Now().Before(deadline) {
		all = append(all, m.GetRenderedTileBatch()...)
		if len(all) >= want {
			return all
		}
		time.Sleep(time.Millisecond)
	}
	return all
}

func TestManagerProducerConsumerConsistency(t *testing.T) {
	m := New(256, 256, 64, 64)
	defer m.StopAndWait()

	n := m.GetTileCount()
	if n != 16 {
		t.Fatalf("GetTileCount() = %d, want 16", n)
	}

	for i := 0; i < n; i++ {
		x := (i % 4) * 64
		y := (i / 4) * 64
		m.UpdateRenderTile(newTestTile(i, x, y, 64, 64, 0))
	}

	batch := drainRendered(t, m, n, 2*time.Second)
	if len(batch) != n {
		t.Fatalf("rendered_tiles count = %d, want %d", len(batch), n)
	}
	if got := m.GetTilesWithRenderedSamplesCount(); got != uint32(n) {
		t.Fatalf("GetTilesWithRenderedSamplesCount() = %d, want %d", got, n)
	}
	if !m.AllTilesHaveRenderedSamples() {
		t.Error("AllTilesHaveRenderedSamples() = false, want true")
	}
}

func TestManagerNewerSampleWins(t *testing.T) {
	m := New(64, 64, 64, 64)
	defer m.StopAndWait()

	m.UpdateRenderTile(newTestTile(0, 0, 0, 64, 64, 5))
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && m.GetCurrentTileSampleCount(0) != 5 {
		time.Sleep(time.Millisecond)
	}
	if got := m.GetCurrentTileSampleCount(0); got != 5 {
		t.Fatalf("sample count after first push = %d, want 5", got)
	}

	// An older sample for the same tile must not overwrite the stored one.
	m.UpdateRenderTile(newTestTile(0, 0, 0, 64, 64, 2))
	time.Sleep(20 * time.Millisecond)
	if got := m.GetCurrentTileSampleCount(0); got != 5 {
		t.Fatalf("sample count after stale push = %d, want unchanged 5", got)
	}
}

func TestManagerCancelStopsWorkers(t *testing.T) {
	m := New(64, 64, 64, 64)
	m.Cancel()
	m.Wait()
	// A push after Cancel should never be drained into rendered_tiles.
	m.UpdateRenderTile(newTestTile(0, 0, 0, 64, 64, 0))
	time.Sleep(20 * time.Millisecond)
	if batch := m.GetRenderedTileBatch(); len(batch) != 0 {
		t.Errorf("rendered_tiles after Cancel = %d entries, want 0", len(batch))
	}
}

func TestManagerReloadResetsState(t *testing.T) {
	m := New(64, 64, 64, 64)
	defer m.StopAndWait()

	m.UpdateRenderTile(newTestTile(0, 0, 0, 64, 64, 0))
	drainRendered(t, m, 1, time.Second)

	m.Reload(true)
	if got := m.GetTilesWithRenderedSamplesCount(); got != 0 {
		t.Fatalf("GetTilesWithRenderedSamplesCount() after Reload = %d, want 0", got)
	}
	if batch := m.GetRenderedTileBatch(); len(batch) != 0 {
		t.Fatalf("rendered_tiles after Reload = %d entries, want 0", len(batch))
	}
}

func TestExposureGammaProcessor(t *testing.T) {
	p := ExposureGammaProcessor{Exposure: 0, Gamma: 1}
	pixels := []float32{0.5, 0.25, 0.75, 1}
	p.Process(pixels)
	for i, want := range []float32{0.5, 0.25, 0.75, 1} {
		if pixels[i] != want {
			t.Errorf("identity exposure/gamma pixels[%d] = %v, want %v", i, pixels[i], want)
		}
	}
}

func TestInitializeTileDataIdempotent(t *testing.T) {
	m := New(64, 64, 8, 8)
	defer m.StopAndWait()
	m.SetFlipImage(true, true)

	tile := newTestTile(0, 0, 0, 8, 8, 0)
	m.InitializeTileData(&tile)
	if tile.Flags&FlagInitialized == 0 {
		t.Fatal("InitializeTileData did not set FlagInitialized")
	}
	x, y := tile.X, tile.Y

	m.InitializeTileData(&tile)
	if tile.X != x || tile.Y != y {
		t.Error("InitializeTileData is not idempotent once Initialized")
	}
}
