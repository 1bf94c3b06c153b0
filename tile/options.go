package tile

// TileManagerConfig holds the optional configuration New applies on top of
// the image/tile dimensions it always takes positionally, following the
// teacher's functional-options shape (options.go's ContextOption/
// contextOptions) rather than a longer positional-argument list.
type TileManagerConfig struct {
	cpuDevice bool
	processor ColorProcessor
}

// Option configures a TileManagerConfig during New.
type Option func(*TileManagerConfig)

// WithCPUDevice marks the tile manager as backing a CPU device, flipping
// the progressive image vertically by default to match the source's
// ccl::RenderTile orientation for that device class.
func WithCPUDevice() Option {
	return func(c *TileManagerConfig) { c.cpuDevice = true }
}

// WithColorProcessor installs a ColorProcessor applied to progressive
// tiles as they're committed (ExposureGammaProcessor, typically). No
// processing is applied if this option is never given.
func WithColorProcessor(p ColorProcessor) Option {
	return func(c *TileManagerConfig) { c.processor = p }
}
