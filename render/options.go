package render

import "github.com/SlawekNowy/UniRender-sub000/denoise"

// RendererOptions holds the optional configuration NewRenderer/Create apply
// on top of the scene and backend they always take positionally, following
// the teacher's functional-options shape (options.go's ContextOption/
// contextOptions) rather than a longer positional-argument list or a run of
// post-construction setters.
type RendererOptions struct {
	denoiser *denoise.Denoiser
	stereo   bool
}

// Option configures a RendererOptions during NewRenderer/Create.
type Option func(*RendererOptions)

// WithDenoiser overrides the Denoiser the Denoise stage calls into (e.g. one
// wrapping a dynamically loaded plug-in via denoise.Loader). Defaults to
// denoise.NewDefault() if never given.
func WithDenoiser(d *denoise.Denoiser) Option {
	return func(o *RendererOptions) { o.denoiser = d }
}

// WithStereo starts the job's eye loop at EyeLeft instead of EyeMono, so
// FinalizeImage re-runs for EyeRight and feeds MergeStereoscopic
// (spec.md §4.7).
func WithStereo() Option {
	return func(o *RendererOptions) { o.stereo = true }
}
