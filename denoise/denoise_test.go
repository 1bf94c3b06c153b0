package denoise

import (
	"context"
	"testing"
)

func makeImage(w, h int, fill byte) ImageData {
	data := make([]byte, w*h*3*4)
	for i := range data {
		data[i] = fill
	}
	return ImageData{Data: data, Format: FormatRGBFP32}
}

func TestPassthroughDeviceCopiesBeauty(t *testing.T) {
	d := NewDefault()
	defer d.Close()

	info := Info{Width: 2, Height: 2, HDR: true}
	beauty := makeImage(2, 2, 7)
	output := makeImage(2, 2, 0)

	if err := d.Denoise(context.Background(), info, ImageInputs{Beauty: beauty}, output, nil); err != nil {
		t.Fatalf("Denoise returned error: %v", err)
	}
	for i, b := range output.Data {
		if b != 7 {
			t.Fatalf("output.Data[%d] = %d, want 7 (copied from beauty)", i, b)
		}
	}
}

func TestDenoiseLightmapDisablesHDR(t *testing.T) {
	var captured Info
	d := New(deviceFunc(func(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error {
		captured = info
		return nil
	}))
	defer d.Close()

	info := Info{Width: 1, Height: 1, HDR: true, Lightmap: true}
	img := makeImage(1, 1, 0)
	if err := d.Denoise(context.Background(), info, ImageInputs{Beauty: img}, img, nil); err != nil {
		t.Fatalf("Denoise returned error: %v", err)
	}
	if captured.HDR {
		t.Error("lightmap=true should disable the HDR flag before calling the device")
	}
}

func TestDenoiseRejectsMismatchedBufferSize(t *testing.T) {
	d := NewDefault()
	defer d.Close()

	info := Info{Width: 4, Height: 4}
	tooSmall := makeImage(2, 2, 0) // wrong size for a 4x4 info
	output := makeImage(4, 4, 0)

	if err := d.Denoise(context.Background(), info, ImageInputs{Beauty: tooSmall}, output, nil); err == nil {
		t.Error("expected an error for a beauty buffer sized for the wrong resolution")
	}
}

func TestDenoiseProgressCancellation(t *testing.T) {
	d := NewDefault()
	defer d.Close()

	info := Info{Width: 1, Height: 1}
	img := makeImage(1, 1, 0)
	err := d.Denoise(context.Background(), info, ImageInputs{Beauty: img}, img, func(float32) bool { return false })
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

// deviceFunc adapts a plain function to the Device interface for tests that
// need to observe what the Denoiser passes through, without a real plug-in.
type deviceFunc func(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error

func (f deviceFunc) Denoise(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error {
	return f(ctx, info, inputs, output, progress)
}

func (f deviceFunc) Close() {}
