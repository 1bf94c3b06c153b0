package tile

import (
	"sync"
	"sync/atomic"

	unirender "github.com/SlawekNowy/UniRender-sub000"
)

// State is TileManager's overall lifecycle state (tilemanager.hpp's
// `State`).
type State uint8

const (
	StateInitial State = iota
	StateRunning
	StateCancelled
	StateStopped
)

// numWorkers is the fixed post-processing pool size (tilemanager.hpp's
// `m_ppThreadPoolHandles` array of 10, backed by a ctpl thread pool of the
// same size).
const numWorkers = 10

// Manager is the tiled progressive compositor (§4.8): backends push raw
// tiles via UpdateRenderTile, a fixed worker pool post-processes them
// (flip/alpha/color-transform) into completed_tiles and a consumer-facing
// rendered_tiles batch, and UpdateFinalImage blits every completed tile
// into one flat progressive image.
type Manager struct {
	imgW, imgH   int
	tileW, tileH int
	tilesPerAxisX, tilesPerAxisY int
	numTiles     int

	cpuDevice bool
	exposure  float32
	gamma     float32
	processor ColorProcessor

	flipHorizontally bool
	flipVertically   bool

	renderedSampleCountPerTile []atomic.Uint32
	numTilesWithRenderedSamples atomic.Uint32

	hasPendingWork atomic.Bool

	inputMu    sync.Mutex
	inputTiles []TileData
	inputQueue []int

	completedMu    sync.Mutex
	completedTiles []TileData

	renderedMu    sync.Mutex
	renderedTiles []TileData

	state atomic.Uint32 // State

	cond     *sync.Cond
	condMu   sync.Mutex
	wg       sync.WaitGroup
	workersUp bool
}

// New initializes a TileManager for an image of imgW×imgH split into
// tileW×tileH tiles (tilemanager.hpp's `Initialize`). opts configures the
// device class and an optional color processor via TileManagerConfig.
func New(imgW, imgH, tileW, tileH int, opts ...Option) *Manager {
	var cfg TileManagerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	tilesX := (imgW + tileW - 1) / tileW
	tilesY := (imgH + tileH - 1) / tileH
	numTiles := tilesX * tilesY

	m := &Manager{
		imgW: imgW, imgH: imgH,
		tileW: tileW, tileH: tileH,
		tilesPerAxisX: tilesX, tilesPerAxisY: tilesY,
		numTiles:  numTiles,
		cpuDevice: cfg.cpuDevice,
		exposure:  1,
		gamma:     1,
		processor: cfg.processor,
		// Progressive output reads bottom-up relative to render tiles on
		// CPU devices; GPU tiles already arrive in display order (mirrors
		// the source's default flip configuration for ccl::RenderTile).
		flipVertically: cfg.cpuDevice,

		inputTiles:                 make([]TileData, numTiles),
		completedTiles:             make([]TileData, numTiles),
		renderedSampleCountPerTile: make([]atomic.Uint32, numTiles),
	}
	m.cond = sync.NewCond(&m.condMu)
	for i := range m.inputTiles {
		m.inputTiles[i] = newEmptyTile(i)
		m.completedTiles[i] = newEmptyTile(i)
	}
	m.setState(StateRunning)
	m.startWorkers()
	return m
}

// SetExposure records an exposure value (tilemanager.hpp's `SetExposure`).
// The worker pool does not read it; tile exposure is changed only through a
// ColorProcessor such as ExposureGammaProcessor.
func (m *Manager) SetExposure(exposure float32) { m.exposure = exposure }

// SetFlipImage configures the per-axis flip InitializeTileData applies.
func (m *Manager) SetFlipImage(horizontally, vertically bool) {
	m.flipHorizontally = horizontally
	m.flipVertically = vertically
}

func (m *Manager) state_() State { return State(m.state.Load()) }
func (m *Manager) setState(s State) {
	m.state.Store(uint32(s))
	m.cond.L.Lock()
	m.cond.Broadcast()
	m.cond.L.Unlock()
}

// GetTileSize returns the configured per-tile width/height.
func (m *Manager) GetTileSize() (int, int) { return m.tileW, m.tileH }

// GetTileCount returns the total number of tiles covering the image.
func (m *Manager) GetTileCount() int { return m.numTiles }

// GetCurrentTileSampleCount reports the highest sample folded into the
// given tile index so far.
func (m *Manager) GetCurrentTileSampleCount(tileIndex int) uint32 {
	if tileIndex < 0 || tileIndex >= len(m.renderedSampleCountPerTile) {
		return 0
	}
	return m.renderedSampleCountPerTile[tileIndex].Load()
}

// GetTilesWithRenderedSamplesCount reports how many distinct tiles have
// received at least one post-processed sample.
func (m *Manager) GetTilesWithRenderedSamplesCount() uint32 {
	return m.numTilesWithRenderedSamples.Load()
}

// AllTilesHaveRenderedSamples reports whether every tile has received at
// least one sample.
func (m *Manager) AllTilesHaveRenderedSamples() bool {
	return int(m.GetTilesWithRenderedSamplesCount()) == m.numTiles
}

// UpdateRenderTile is the producer entry point (§4.8): a backend hands in
// a freshly rendered tile; it is only accepted if its sample count is not
// lower than whatever is currently queued for that index.
func (m *Manager) UpdateRenderTile(tile TileData) {
	if tile.Index < 0 || tile.Index >= m.numTiles {
		return
	}

	m.inputMu.Lock()
	stored := m.inputTiles[tile.Index]
	if stored.Sample != sentinelSample && tile.Sample < stored.Sample {
		m.inputMu.Unlock()
		unirender.Logger().Warn("stale tile sample dropped",
			"tile_index", tile.Index, "incoming_sample", tile.Sample, "stored_sample", stored.Sample)
		return
	}
	m.inputTiles[tile.Index] = tile
	m.inputQueue = append(m.inputQueue, tile.Index)
	m.inputMu.Unlock()

	m.hasPendingWork.Store(true)
	m.cond.L.Lock()
	m.cond.Broadcast()
	m.cond.L.Unlock()
}

// popInputTile pops the next queued tile index for a worker to process,
// clearing hasPendingWork once the queue empties (§4.8 step 1).
func (m *Manager) popInputTile() (TileData, bool) {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()
	if len(m.inputQueue) == 0 {
		m.hasPendingWork.Store(false)
		return TileData{}, false
	}
	idx := m.inputQueue[0]
	m.inputQueue = m.inputQueue[1:]
	if len(m.inputQueue) == 0 {
		m.hasPendingWork.Store(false)
	}
	return m.inputTiles[idx], true
}

// InitializeTileData remaps (x,y) for the configured flip and normalizes
// the raw bytes into an RGBA-float buffer with alpha forced opaque (§4.8
// step 2). Idempotent via the Initialized flag.
func (m *Manager) InitializeTileData(tile *TileData) {
	if tile.Flags&FlagInitialized != 0 {
		return
	}
	if m.flipHorizontally {
		tile.X = m.imgW - tile.X - tile.W
	}
	if m.flipVertically {
		tile.Y = m.imgH - tile.Y - tile.H
	}

	if len(tile.Bytes) != tile.W*tile.H*4 {
		buf := make([]float32, tile.W*tile.H*4)
		copy(buf, tile.Bytes)
		tile.Bytes = buf
	}
	if m.flipHorizontally {
		flipTileHorizontal(tile)
	}
	if m.flipVertically {
		flipTileVertical(tile)
	}
	for i := 3; i < len(tile.Bytes); i += 4 {
		tile.Bytes[i] = 1
	}
	tile.Flags |= FlagInitialized
}

func flipTileHorizontal(tile *TileData) {
	stride := tile.W * 4
	for y := 0; y < tile.H; y++ {
		row := y * stride
		for x := 0; x < tile.W/2; x++ {
			left := row + x*4
			right := row + (tile.W-1-x)*4
			for c := 0; c < 4; c++ {
				tile.Bytes[left+c], tile.Bytes[right+c] = tile.Bytes[right+c], tile.Bytes[left+c]
			}
		}
	}
}

func flipTileVertical(tile *TileData) {
	stride := tile.W * 4
	for y := 0; y < tile.H/2; y++ {
		top := y * stride
		bottom := (tile.H - 1 - y) * stride
		for c := 0; c < stride; c++ {
			tile.Bytes[top+c], tile.Bytes[bottom+c] = tile.Bytes[bottom+c], tile.Bytes[top+c]
		}
	}
}

// ApplyPostProcessingForProgressiveTile runs the configured ColorProcessor
// over the tile's pixel buffer, if one was supplied (§4.8 step 4).
func (m *Manager) ApplyPostProcessingForProgressiveTile(tile *TileData) {
	if m.processor != nil {
		m.processor.Process(tile.Bytes)
	}
}

// commitCompletedTile replaces completed_tiles[index] iff the new sample
// is >= the stored one, or the stored one is still sentinel (§4.8 step 3).
func (m *Manager) commitCompletedTile(tile TileData) bool {
	m.completedMu.Lock()
	defer m.completedMu.Unlock()
	prev := m.completedTiles[tile.Index]
	if prev.Sample != sentinelSample && tile.Sample < prev.Sample {
		return false
	}
	firstSample := prev.Sample == sentinelSample
	m.completedTiles[tile.Index] = tile
	return firstSample
}

func (m *Manager) appendRenderedTile(tile TileData) {
	m.renderedMu.Lock()
	m.renderedTiles = append(m.renderedTiles, tile)
	m.renderedMu.Unlock()
}

// GetRenderedTileBatch atomically swaps out and returns the consumer-facing
// batch accumulated since the last call.
func (m *Manager) GetRenderedTileBatch() []TileData {
	m.renderedMu.Lock()
	defer m.renderedMu.Unlock()
	batch := m.renderedTiles
	m.renderedTiles = nil
	return batch
}

// UpdateFinalImage stops the worker pool, blits every completed tile into
// a flat progressive image, and returns it (§4.8).
func (m *Manager) UpdateFinalImage() []float32 {
	m.StopAndWait()

	img := make([]float32, m.imgW*m.imgH*4)
	m.completedMu.Lock()
	defer m.completedMu.Unlock()
	for _, tile := range m.completedTiles {
		if tile.Flags&FlagInitialized == 0 {
			continue
		}
		blitTile(img, m.imgW, tile)
	}
	return img
}

func blitTile(img []float32, imgW int, tile TileData) {
	for row := 0; row < tile.H; row++ {
		dstY := tile.Y + row
		if dstY < 0 {
			continue
		}
		dstOff := (dstY*imgW + tile.X) * 4
		srcOff := row * tile.W * 4
		n := tile.W * 4
		if dstOff+n > len(img) || dstOff < 0 {
			continue
		}
		copy(img[dstOff:dstOff+n], tile.Bytes[srcOff:srcOff+n])
	}
}

// worker is one of the fixed 10-entry post-processing pool (§4.8's
// scheduling model: "one bounded worker pool inside TileManager").
func (m *Manager) worker() {
	defer m.wg.Done()
	for {
		switch state := m.state_(); {
		case state == StateCancelled:
			return
		case state == StateStopped && !m.hasPendingWork.Load():
			return
		}

		if !m.hasPendingWork.Load() {
			m.cond.L.Lock()
			for !m.hasPendingWork.Load() && m.state_() == StateRunning {
				m.cond.Wait()
			}
			m.cond.L.Unlock()
			if m.state_() != StateRunning {
				// Re-evaluate via the top-of-loop switch instead of
				// returning directly: a Stopped transition with tiles
				// still pending must drain them, not drop them.
				continue
			}
		}

		tile, ok := m.popInputTile()
		if !ok {
			continue
		}

		m.InitializeTileData(&tile)
		isNew := m.commitCompletedTile(tile)
		m.ApplyPostProcessingForProgressiveTile(&tile)
		m.appendRenderedTile(tile)

		m.renderedSampleCountPerTile[tile.Index].Store(uint32(tile.Sample))
		if isNew {
			m.numTilesWithRenderedSamples.Add(1)
		}
	}
}

func (m *Manager) startWorkers() {
	if m.workersUp {
		return
	}
	m.workersUp = true
	m.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go m.worker()
	}
}

// Wait blocks until every worker has exited (reached Cancelled/Stopped).
func (m *Manager) Wait() {
	m.wg.Wait()
	m.workersUp = false
}

// Cancel stops accepting further progress without draining the image
// (§4.8: "TileManager Cancel() short-circuits workers at every mutex
// boundary").
func (m *Manager) Cancel() {
	m.setState(StateCancelled)
}

// StopAndWait sets Stopped and joins every worker.
func (m *Manager) StopAndWait() {
	m.setState(StateStopped)
	m.Wait()
}

// Reload resets all tile state and relaunches the worker pool, optionally
// waiting for the previous pool to fully drain first (§4.8).
func (m *Manager) Reload(waitForCompletion bool) {
	if waitForCompletion {
		m.StopAndWait()
	} else {
		m.Cancel()
		m.Wait()
	}

	m.renderedMu.Lock()
	m.renderedTiles = nil
	m.renderedMu.Unlock()

	m.inputMu.Lock()
	m.inputQueue = nil
	for i := range m.inputTiles {
		m.inputTiles[i] = newEmptyTile(i)
	}
	m.inputMu.Unlock()

	m.completedMu.Lock()
	for i := range m.completedTiles {
		m.completedTiles[i] = newEmptyTile(i)
	}
	m.completedMu.Unlock()

	for i := range m.renderedSampleCountPerTile {
		m.renderedSampleCountPerTile[i].Store(0)
	}
	m.numTilesWithRenderedSamples.Store(0)
	m.hasPendingWork.Store(false)

	m.setState(StateRunning)
	m.startWorkers()
}
