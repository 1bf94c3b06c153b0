package backend

import (
	"context"
	"testing"
	"time"

	"github.com/SlawekNowy/UniRender-sub000/scene"
	"github.com/google/uuid"
)

func TestRegistryGetUnknownBackend(t *testing.T) {
	if _, err := Get("nonexistent-backend", nil, FlagNone); err != ErrBackendNotAvailable {
		t.Fatalf("Get(unknown) error = %v, want ErrBackendNotAvailable", err)
	}
}

func TestRegistryRegisterUnregister(t *testing.T) {
	const name = "test-registry-backend"
	Register(name, func(s *scene.Scene, flags Flags) (RenderBackend, error) {
		return NewStubBackend(nil, flags), nil
	})
	if !IsRegistered(name) {
		t.Fatal("IsRegistered after Register = false, want true")
	}
	found := false
	for _, n := range Available() {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Error("Available() does not list the newly registered backend")
	}

	Unregister(name)
	if IsRegistered(name) {
		t.Error("IsRegistered after Unregister = true, want false")
	}
}

func TestStubBackendIsRegisteredByDefault(t *testing.T) {
	if !IsRegistered(BackendStub) {
		t.Fatal("stub backend should self-register via init()")
	}
	b, err := Get(BackendStub, nil, FlagNone)
	if err != nil {
		t.Fatalf("Get(stub) error = %v", err)
	}
	defer b.Close()
	if b.Name() != BackendStub {
		t.Errorf("Name() = %q, want %q", b.Name(), BackendStub)
	}
}

func TestStubBackendRunsToCompletion(t *testing.T) {
	b := NewStubBackend(nil, FlagNone)
	defer b.Close()

	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := b.StartRender(); err != nil {
		t.Fatalf("StartRender() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := b.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	progress, done := b.GetProgress()
	if !done {
		t.Error("GetProgress() done = false after Wait returned, want true")
	}
	if progress != 1 {
		t.Errorf("GetProgress() progress = %v, want 1", progress)
	}
}

func TestStubBackendStopCancelsRun(t *testing.T) {
	b := NewStubBackend(nil, FlagNone)
	defer b.Close()

	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := b.StartRender(); err != nil {
		t.Fatalf("StartRender() error = %v", err)
	}
	if err := b.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := b.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if _, done := b.GetProgress(); !done {
		t.Error("GetProgress() done = false after Stop, want true")
	}
}

func TestStubBackendPauseResume(t *testing.T) {
	b := NewStubBackend(nil, FlagNone)
	defer b.Close()

	if err := b.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := b.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if err := b.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
}

func TestStubBackendSceneEditRequiresBegin(t *testing.T) {
	b := NewStubBackend(nil, FlagNone)
	defer b.Close()

	id := uuid.New()
	if err := b.SyncEditedActor(id); err != ErrNotInitialized {
		t.Errorf("SyncEditedActor before BeginSceneEdit = %v, want ErrNotInitialized", err)
	}

	if err := b.BeginSceneEdit(); err != nil {
		t.Fatalf("BeginSceneEdit() error = %v", err)
	}
	if err := b.SyncEditedActor(id); err != nil {
		t.Errorf("SyncEditedActor after BeginSceneEdit = %v, want nil", err)
	}
	if err := b.EndSceneEdit(); err != nil {
		t.Fatalf("EndSceneEdit() error = %v", err)
	}
	if err := b.SyncEditedActor(id); err != ErrNotInitialized {
		t.Errorf("SyncEditedActor after EndSceneEdit = %v, want ErrNotInitialized", err)
	}
}
