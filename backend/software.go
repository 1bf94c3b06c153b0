package backend

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SlawekNowy/UniRender-sub000/scene"
	"github.com/google/uuid"
)

// BackendStub is the identifier of the in-process stand-in backend used by
// tests and by S1/S6 in §8 to exercise the render-stage state machine
// without a real shared library.
const BackendStub = "stub"

// init registers the stub backend on package import, matching the
// teacher's convention of self-registering backends from an init().
func init() {
	Register(BackendStub, func(s *scene.Scene, flags Flags) (RenderBackend, error) {
		return NewStubBackend(s, flags), nil
	})
}

// stubState mirrors the subset of ImageRenderStage transitions (§4.7) a
// fake backend needs to answer Wait/GetProgress/Stop/Pause meaningfully:
// not-started, running, paused, and the three terminal states.
type stubState uint8

const (
	stubPending stubState = iota
	stubRunning
	stubPaused
	stubComplete
	stubFailed
	stubCancelled
)

// StubBackend is a pure-Go RenderBackend that advances through a
// simulated progress counter instead of computing pixels, so the
// render-stage state machine, Renderer lifecycle, and plug-in loader can
// be exercised without a native shared library (§6's [ADD] note).
type StubBackend struct {
	scene *scene.Scene
	flags Flags

	mu       sync.Mutex
	state    stubState
	progress float32
	editing  bool
	done     chan struct{}
	doneOnce sync.Once

	cancelRequested atomic.Bool
}

// NewStubBackend returns a StubBackend bound to s. s may be nil — the
// stub never dereferences it, matching scenarios that only exercise the
// lifecycle state machine.
func NewStubBackend(s *scene.Scene, flags Flags) *StubBackend {
	return &StubBackend{scene: s, flags: flags, done: make(chan struct{})}
}

func (b *StubBackend) Name() string { return BackendStub }

func (b *StubBackend) Start() error {
	b.mu.Lock()
	if b.state != stubPending {
		b.mu.Unlock()
		return nil
	}
	b.state = stubRunning
	b.mu.Unlock()
	return nil
}

func (b *StubBackend) StartRender() error {
	b.mu.Lock()
	if b.state == stubPending {
		b.state = stubRunning
	}
	if b.state != stubRunning {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	go b.run()
	return nil
}

// run simulates ten progress increments, checking for cooperative
// cancellation between each the way spec.md §5 describes ("typical poll
// cadence: 1s") — scaled down so tests don't block for real time.
func (b *StubBackend) run() {
	const steps = 10
	for i := 1; i <= steps; i++ {
		time.Sleep(time.Millisecond)

		b.mu.Lock()
		if b.state == stubPaused {
			b.mu.Unlock()
			i--
			continue
		}
		if b.state != stubRunning {
			b.mu.Unlock()
			if b.state == stubCancelled {
				b.finish()
			}
			return
		}
		if b.cancelRequested.Load() {
			b.state = stubCancelled
			b.mu.Unlock()
			b.finish()
			return
		}
		b.progress = float32(i) / float32(steps)
		b.mu.Unlock()
	}

	b.mu.Lock()
	b.state = stubComplete
	b.progress = 1
	b.mu.Unlock()
	b.finish()
}

func (b *StubBackend) finish() {
	b.doneOnce.Do(func() { close(b.done) })
}

func (b *StubBackend) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *StubBackend) GetProgress() (float32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	done := b.state == stubComplete || b.state == stubFailed || b.state == stubCancelled
	return b.progress, done
}

func (b *StubBackend) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = stubPending
	b.progress = 0
	b.cancelRequested.Store(false)
	b.done = make(chan struct{})
	b.doneOnce = sync.Once{}
	return nil
}

func (b *StubBackend) Restart() error {
	if err := b.Reset(); err != nil {
		return err
	}
	return b.StartRender()
}

func (b *StubBackend) Stop() error {
	b.cancelRequested.Store(true)
	b.mu.Lock()
	if b.state == stubRunning || b.state == stubPaused {
		b.state = stubCancelled
	}
	b.mu.Unlock()
	return nil
}

func (b *StubBackend) Pause() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == stubRunning {
		b.state = stubPaused
	}
	return nil
}

func (b *StubBackend) Resume() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == stubPaused {
		b.state = stubRunning
	}
	return nil
}

func (b *StubBackend) Suspend() error { return b.Pause() }

func (b *StubBackend) BeginSceneEdit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editing = true
	return nil
}

func (b *StubBackend) EndSceneEdit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.editing = false
	return nil
}

func (b *StubBackend) SyncEditedActor(id uuid.UUID) error {
	b.mu.Lock()
	editing := b.editing
	b.mu.Unlock()
	if !editing {
		return ErrNotInitialized
	}
	return nil
}

func (b *StubBackend) Export(path string) error { return nil }

func (b *StubBackend) SaveRenderPreview() error { return nil }

func (b *StubBackend) Close() {
	b.Stop()
	b.finish()
}
