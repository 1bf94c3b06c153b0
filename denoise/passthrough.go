package denoise

import "context"

// PassthroughDevice copies the beauty buffer to the output unmodified,
// reporting a single 100% progress tick. It exists so the Denoise render
// stage (render.StageDenoise) has a concrete, dependency-free Device to
// exercise when no real filtering library is wired, the same role
// backend.StubBackend plays for RenderBackend.
type PassthroughDevice struct{}

func (PassthroughDevice) Denoise(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copy(output.Data, inputs.Beauty.Data)
	if progress != nil && !progress(1) {
		return ErrCancelled
	}
	return nil
}

func (PassthroughDevice) Close() {}
