package hooks

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/refkit/internal/errors"
)

func newTestOwner(parent *Owner, opts ...Option) *Owner {
	opts = append([]Option{WithTracer(noop.NewTracerProvider().Tracer("test"))}, opts...)
	return NewOwner(parent, opts...)
}

func TestOwnerBasic(t *testing.T) {
	owner := newTestOwner(nil)

	if owner.ID() == 0 {
		t.Error("owner should have non-zero ID")
	}
	if owner.Parent() != nil {
		t.Error("root owner should have nil parent")
	}
	if owner.IsDisposed() {
		t.Error("new owner should not be disposed")
	}
	if owner.Logger() == nil {
		t.Error("owner should have a logger")
	}
}

func TestOwnerHierarchy(t *testing.T) {
	root := newTestOwner(nil)
	child1 := newTestOwner(root)
	child2 := newTestOwner(root)
	grandchild := newTestOwner(child1)

	if child1.Parent() != root || child2.Parent() != root {
		t.Error("children should have root as parent")
	}
	if grandchild.Parent() != child1 {
		t.Error("grandchild parent should be child1")
	}
	if child1.ID() == child2.ID() {
		t.Error("owner IDs should be unique")
	}
}

func TestOwnerInheritsDebug(t *testing.T) {
	root := newTestOwner(nil, WithDebug(true))
	child := newTestOwner(root)
	override := newTestOwner(root, WithDebug(false))

	if !child.debug {
		t.Error("child should inherit debug from parent")
	}
	if override.debug {
		t.Error("option should override inherited debug")
	}
}

func TestOwnerDisposeHierarchy(t *testing.T) {
	root := newTestOwner(nil)
	child1 := newTestOwner(root)
	child2 := newTestOwner(root)
	grandchild := newTestOwner(child1)

	var (
		order []string
		mu    sync.Mutex
	)
	record := func(name string) func() {
		return func() {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}

	grandchild.OnCleanup(record("grandchild"))
	child1.OnCleanup(record("child1"))
	child2.OnCleanup(record("child2"))
	root.OnCleanup(record("root-1"))
	root.OnCleanup(record("root-2"))

	root.Dispose()

	for _, o := range []*Owner{root, child1, child2, grandchild} {
		if !o.IsDisposed() {
			t.Errorf("owner %d should be disposed", o.ID())
		}
	}

	want := []string{"child2", "grandchild", "child1", "root-2", "root-1"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("disposal order = %v, want %v", order, want)
	}

	root.Dispose()
	if len(order) != len(want) {
		t.Error("second Dispose should be a no-op")
	}
}

func TestOwnerDisposeRemovesFromParent(t *testing.T) {
	root := newTestOwner(nil)
	child := newTestOwner(root)
	child.Dispose()

	if len(root.children) != 0 {
		t.Errorf("root has %d children after child Dispose, want 0", len(root.children))
	}
}

func TestOnCleanupAfterDispose(t *testing.T) {
	owner := newTestOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose should run immediately")
	}
}

func TestRenderDisposedOwner(t *testing.T) {
	owner := newTestOwner(nil)
	owner.Dispose()

	called := false
	err := owner.Render(context.Background(), func(context.Context) { called = true })

	if !stderrors.Is(err, errors.New(errors.CodeOwnerDisposed)) {
		t.Fatalf("Render() error = %v, want E005", err)
	}
	if called {
		t.Error("render function should not run on a disposed owner")
	}
}

func TestRenderCountsAndRenderingFlag(t *testing.T) {
	owner := newTestOwner(nil)

	var during bool
	for i := 0; i < 3; i++ {
		if err := owner.Render(context.Background(), func(context.Context) {
			during = owner.IsRendering()
		}); err != nil {
			t.Fatalf("Render() error = %v", err)
		}
	}

	if !during {
		t.Error("IsRendering() should be true inside Render")
	}
	if owner.IsRendering() {
		t.Error("IsRendering() should be false after Render")
	}
	if owner.RenderCount() != 3 {
		t.Errorf("RenderCount() = %d, want 3", owner.RenderCount())
	}
}

func TestHookOutsideRender(t *testing.T) {
	owner := newTestOwner(nil)

	defer func() {
		r := recover()
		e, ok := r.(*errors.Error)
		if !ok || e.Code != errors.CodeHookOutsideRender {
			t.Fatalf("recovered %v, want E001", r)
		}
	}()
	UseRef(owner, 0)
}

func TestHookOrderValidation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	owner := newTestOwner(nil, WithDebug(true), WithLogger(logger))

	swap := false
	render := func(context.Context) {
		if swap {
			UseMergedRefs[int](owner)
			UseRef(owner, 0)
			return
		}
		UseRef(owner, 0)
		UseMergedRefs[int](owner)
	}

	if err := owner.Render(context.Background(), render); err != nil {
		t.Fatalf("first Render() error = %v", err)
	}
	if err := owner.Render(context.Background(), render); err != nil {
		t.Fatalf("stable Render() error = %v", err)
	}

	swap = true
	err := owner.Render(context.Background(), render)
	if !stderrors.Is(err, errors.New(errors.CodeHookOrderChanged)) {
		t.Fatalf("Render() error = %v, want E002", err)
	}
	if owner.IsRendering() {
		t.Error("failed render should clear the rendering flag")
	}
	if !strings.Contains(buf.String(), "render failed") {
		t.Errorf("expected a warning log, got %q", buf.String())
	}
}

func TestHookOrderValidationMissingHook(t *testing.T) {
	owner := newTestOwner(nil, WithDebug(true))

	skip := false
	render := func(context.Context) {
		UseRef(owner, "")
		if !skip {
			UseRef(owner, "")
		}
	}

	if err := owner.Render(context.Background(), render); err != nil {
		t.Fatalf("first Render() error = %v", err)
	}

	skip = true
	err := owner.Render(context.Background(), render)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != errors.CodeHookOrderChanged {
		t.Fatalf("Render() error = %v, want E002", err)
	}
	for _, want := range []string{"Do not call hooks inside conditions or loops.", "Expected 2 hooks, got 1."} {
		if !strings.Contains(e.Detail, want) {
			t.Errorf("Detail = %q, missing %q", e.Detail, want)
		}
	}
}

func TestHookSlotMismatchWithoutDebug(t *testing.T) {
	owner := newTestOwner(nil)

	swap := false
	err := owner.Render(context.Background(), func(context.Context) {
		UseRef(owner, 0)
	})
	if err != nil {
		t.Fatalf("first Render() error = %v", err)
	}

	swap = true
	err = owner.Render(context.Background(), func(context.Context) {
		if swap {
			UseMergedRefs[int](owner)
		}
	})
	if !stderrors.Is(err, errors.New(errors.CodeHookSlotMismatch)) {
		t.Fatalf("Render() error = %v, want E003", err)
	}
}

func TestRenderPropagatesForeignPanics(t *testing.T) {
	owner := newTestOwner(nil)

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v, want boom", r)
		}
	}()
	_ = owner.Render(context.Background(), func(context.Context) { panic("boom") })
}

func TestHookTypeString(t *testing.T) {
	tests := map[HookType]string{
		HookRef:        "Ref",
		HookMergedRefs: "MergedRefs",
		HookType(0):    "Unknown",
	}
	for ht, want := range tests {
		if got := ht.String(); got != want {
			t.Errorf("HookType(%d).String() = %q, want %q", ht, got, want)
		}
	}
}
