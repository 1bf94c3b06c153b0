// Package unirender implements a renderer-agnostic raytracing abstraction
// layer: scenes, shader graphs, meshes and caches are described independent
// of any specific path-tracer and handed to a dynamically loaded backend
// (see the backend sub-package) for pixel computation.
package unirender

import (
	"errors"
	"fmt"
)

// Kind classifies a failure into the closed taxonomy used throughout the
// IR, caches, renderer lifecycle, and tile manager. Render loops translate
// these into a render.JobStatus rather than letting them propagate as a
// panic; graph-editing paths (Link, ResolveGroupNodes, Bake) return them
// directly to the caller.
type Kind uint8

const (
	// InvalidInput covers unsupported socket conversions, linking into a
	// Concrete socket, linking a nonexistent endpoint, illegal tile/image
	// resolutions, and a missing primary output socket.
	InvalidInput Kind = iota
	// NotFound covers unregistered node types, unknown socket names,
	// missing plug-in libraries/symbols, and out-of-range cache indices.
	NotFound
	// StateInvariant covers resolving a group with unresolved child
	// groups, out-of-range triangle indices, and baking a chunk that has
	// lost its ShaderCache.
	StateInvariant
	// Cancelled covers cooperative cancellation via RenderWorker or
	// TileManager.
	Cancelled
	// BackendFailure covers a backend reporting an error through its
	// progress/error-message surface.
	BackendFailure
	// DeserializationFailure covers version gates and header-magic
	// mismatches on the persisted scene format. The decoders in this
	// module do not return it: on an out-of-range version they return an
	// empty value and report no error.
	DeserializationFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case StateInvariant:
		return "state_invariant"
	case Cancelled:
		return "cancelled"
	case BackendFailure:
		return "backend_failure"
	case DeserializationFailure:
		return "deserialization_failure"
	default:
		return "unknown"
	}
}

// Error is the single "fails with <kind>" mechanism named in the spec's
// error-handling design: every failure surfaced across package boundaries
// carries a Kind, the operation that raised it, a human-readable message,
// and an optional wrapped cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError constructs an *Error. op is the failing function/method name
// ("Link", "ResolveGroupNodes", "Bake", ...), msg a descriptive sentence.
func NewError(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// WrapError constructs an *Error around an existing cause.
func WrapError(kind Kind, op, msg string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: cause}
}

// KindOf reports the Kind of err if it is (or wraps) an *Error, and false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
