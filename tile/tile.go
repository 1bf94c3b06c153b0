// Package tile implements the TileManager (§4.8): a fixed-size worker
// pool that turns backend-submitted render tiles into a progressively
// refined output image, with post-processing (exposure/gamma/color
// transform) applied per tile as it lands.
package tile

import (
	"sync/atomic"

	"github.com/chewxy/math32"
)

// Flags marks per-tile state.
type Flags uint8

const (
	FlagNone        Flags = 0
	FlagHDR         Flags = 1 << 0
	FlagInitialized Flags = 1 << 1
)

// sentinelSample marks a tile slot that has never received a sample,
// matching the source's `u16::MAX` sentinel (§4.8's "previous is
// sentinel").
const sentinelSample = ^uint16(0)

// TileData is one rectangular region of the output image (§3): `Sample`
// is the highest-numbered sample folded into Bytes so far; `Bytes` is an
// RGBA float (4×f32) buffer once Initialized.
type TileData struct {
	X, Y, W, H int
	Sample     uint16
	Index      int
	Flags      Flags
	Bytes      []float32 // len == W*H*4 once Initialized
}

func newEmptyTile(index int) TileData {
	return TileData{Index: index, Sample: sentinelSample}
}

// ColorProcessor applies an exposure/gamma/OCIO transform to a tile's
// pixel buffer in place (§4.8's "optional shared ColorProcessor").
type ColorProcessor interface {
	Process(pixels []float32)
}

// ExposureGammaProcessor is the simplest ColorProcessor: `pixel =
// (pixel*2^exposure)^(1/gamma)`, applied to the RGB channels only.
type ExposureGammaProcessor struct {
	Exposure float32
	Gamma    float32
}

func (p ExposureGammaProcessor) Process(pixels []float32) {
	exposureScale := math32.Pow(2, p.Exposure)
	invGamma := float32(1)
	if p.Gamma != 0 {
		invGamma = 1 / p.Gamma
	}
	for i := 0; i+3 < len(pixels); i += 4 {
		for c := 0; c < 3; c++ {
			v := pixels[i+c] * exposureScale
			if v > 0 {
				v = math32.Pow(v, invGamma)
			}
			pixels[i+c] = v
		}
	}
}
