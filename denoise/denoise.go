// Package denoise implements the Denoiser facade (§4.9): a thin,
// format-normalizing wrapper around an external denoising device. The
// device itself (Intel OIDN in the original) is an out-of-scope external
// collaborator; this package only specifies the call shape and the
// dynamic-plug-in loading path a concrete device binds through, mirroring
// how package backend treats renderer backends.
package denoise

import (
	"context"
	"errors"
	"fmt"
)

// Format is the pixel layout of an ImageData buffer, mapped onto the
// backend's channel-count-3 formats (§4.9: "RGB-FP32 or RGB-FP16").
type Format uint8

const (
	FormatRGBFP32 Format = iota
	FormatRGBFP16
)

func (f Format) bytesPerChannel() int {
	if f == FormatRGBFP16 {
		return 2
	}
	return 4
}

// ImageData is a raw, tightly packed RGB pixel buffer in the given Format.
type ImageData struct {
	Data   []byte
	Format Format
}

// Info configures a single denoise call (§4.9).
type Info struct {
	NumThreads uint32
	Width      uint32
	Height     uint32
	Lightmap   bool
	HDR        bool
}

// ImageInputs bundles the beauty pass with its optional auxiliary buffers;
// Albedo/Normal are nil when not supplied.
type ImageInputs struct {
	Beauty ImageData
	Albedo *ImageData
	Normal *ImageData
}

// ProgressFunc reports fractional progress in [0,1]; returning false
// cancels the in-flight denoise (§4.9).
type ProgressFunc func(progress float32) bool

// ErrCancelled is returned when a ProgressFunc returns false mid-denoise.
var ErrCancelled = errors.New("denoise: cancelled by progress callback")

// Device is the minimal surface a concrete denoiser binds (an in-process
// implementation, or one resolved dynamically via Loader — see loader.go).
// Backend error strings are surfaced verbatim per spec.md §7's propagation
// policy ("Denoiser surfaces backend error strings verbatim").
type Device interface {
	Denoise(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error
	Close()
}

// Denoiser is the facade callers use; it owns a Device for the lifetime of
// however many Denoise calls are made against it (mirrors denoise.hpp's
// `Denoiser` class wrapping a single `oidn::DeviceRef`).
type Denoiser struct {
	device Device
}

// New wraps an already-resolved Device. Use NewDefault to get the
// in-process passthrough device when no real denoising backend is wired.
func New(device Device) *Denoiser {
	return &Denoiser{device: device}
}

// NewDefault wraps the built-in PassthroughDevice, suitable for pipelines
// that want the Denoise stage's shape without linking a real OIDN-style
// library.
func NewDefault() *Denoiser {
	return &Denoiser{device: PassthroughDevice{}}
}

// Denoise validates channel-count/size consistency across inputs/output
// and delegates to the bound Device (§4.9's `Denoiser::denoise`).
func (d *Denoiser) Denoise(ctx context.Context, info Info, inputs ImageInputs, output ImageData, progress ProgressFunc) error {
	if d.device == nil {
		return errors.New("denoise: no device bound")
	}
	if err := validateBuffer(inputs.Beauty, info); err != nil {
		return fmt.Errorf("denoise: beauty input: %w", err)
	}
	if inputs.Albedo != nil {
		if err := validateBuffer(*inputs.Albedo, info); err != nil {
			return fmt.Errorf("denoise: albedo input: %w", err)
		}
	}
	if inputs.Normal != nil {
		if err := validateBuffer(*inputs.Normal, info); err != nil {
			return fmt.Errorf("denoise: normal input: %w", err)
		}
	}
	if err := validateBuffer(output, info); err != nil {
		return fmt.Errorf("denoise: output: %w", err)
	}

	// lightmap selects a lightmap-tuned filter and implicitly disables the
	// HDR flag, per §4.9.
	if info.Lightmap {
		info.HDR = false
	}

	return d.device.Denoise(ctx, info, inputs, output, progress)
}

// Close releases the bound Device.
func (d *Denoiser) Close() {
	if d.device != nil {
		d.device.Close()
	}
}

func validateBuffer(img ImageData, info Info) error {
	const channels = 3
	want := int(info.Width) * int(info.Height) * channels * img.Format.bytesPerChannel()
	if len(img.Data) != want {
		return fmt.Errorf("expected %d bytes for %dx%d, got %d", want, info.Width, info.Height, len(img.Data))
	}
	return nil
}
