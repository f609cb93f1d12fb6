package hooks

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/refkit/internal/errors"
	"github.com/vango-dev/refkit/pkg/ref"
)

// Default tracer name for owner renders.
const defaultTracerName = "refkit"

// HookType identifies the type of hook call for order validation.
type HookType uint8

const (
	HookRef HookType = iota + 1
	HookMergedRefs
)

// String returns a human-readable name for the hook type.
func (h HookType) String() string {
	switch h {
	case HookRef:
		return "Ref"
	case HookMergedRefs:
		return "MergedRefs"
	default:
		return "Unknown"
	}
}

// globalIDCounter is the source of unique owner IDs.
var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Owner represents a component scope.
//
// An Owner keeps the per-render hook slots that give refs and merged refs a
// stable identity across renders, and the cleanups that run when the
// component unmounts. Owners form a hierarchy mirroring the component tree;
// disposing an Owner disposes its children.
type Owner struct {
	id     uint64
	parent *Owner

	logger   *slog.Logger
	tracer   trace.Tracer
	observer ref.Observer
	debug    bool

	children   []*Owner
	childrenMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	disposed atomic.Bool

	// rendering is true between StartRender and EndRender.
	rendering bool

	// Dev-mode hook order tracking (only used when debug is on)
	hookOrder   []HookType // Expected order from first render
	hookIndex   int        // Current index during render
	renderCount int        // 0 = first render, 1+ = subsequent

	// Hook slot storage for stable identity across renders.
	hookSlots   []any
	hookSlotIdx int
}

// NewOwner creates a new Owner with the given parent.
// The new Owner is registered as a child of the parent and inherits its
// logger, tracer, observer and debug setting unless opts override them.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner, opts ...Option) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		o.logger = parent.logger
		o.tracer = parent.tracer
		o.observer = parent.observer
		o.debug = parent.debug
	} else {
		o.logger = slog.Default()
		o.tracer = otel.Tracer(defaultTracerName)
		o.observer = ref.NopObserver{}
	}

	for _, opt := range opts {
		opt(o)
	}

	o.logger = o.logger.With("owner_id", o.id)

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// Logger returns the owner's logger.
func (o *Owner) Logger() *slog.Logger {
	return o.logger
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers a cleanup function to run when this Owner is disposed.
// If the Owner is already disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Dispose disposes this Owner and all its children.
// Children are disposed in reverse order (last created first), then
// cleanups run in reverse registration order. Dispose is idempotent.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.hookSlots = nil
}

// =============================================================================
// Render
// =============================================================================

// Render runs fn as one render of this Owner's component.
//
// Hooks called from fn use this Owner's slots. A hook misuse detected during
// the render (order change, slot mismatch) is returned as an
// *errors.Error; any other panic propagates.
func (o *Owner) Render(ctx context.Context, fn func(ctx context.Context)) (err error) {
	ctx, span := o.tracer.Start(ctx, "refkit.render",
		trace.WithAttributes(
			attribute.Int64("refkit.owner_id", int64(o.id)),
			attribute.Int("refkit.render_count", o.renderCount),
		),
	)
	defer span.End()

	if o.disposed.Load() {
		err = errors.New(errors.CodeOwnerDisposed).
			AppendDetailf("Owner %d was disposed.", o.id)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		o.rendering = false
		re, ok := r.(*errors.Error)
		if !ok {
			panic(r)
		}
		span.RecordError(re)
		span.SetStatus(codes.Error, re.FormatCompact())
		o.logger.Warn("render failed", "code", re.Code, "error", re.Error())
		err = re
	}()

	o.StartRender()
	fn(ctx)
	o.EndRender()

	span.SetAttributes(attribute.Int("refkit.hooks", o.hookSlotIdx))
	return nil
}

// StartRender is called at the beginning of a component render.
// It resets the hook slot index, and in debug mode the order validation index.
func (o *Owner) StartRender() {
	o.rendering = true
	o.hookSlotIdx = 0
	if o.debug {
		o.hookIndex = 0
		if o.renderCount == 0 {
			// A failed first render must not leave a partial order behind
			o.hookOrder = o.hookOrder[:0]
		}
	}
}

// EndRender is called at the end of a component render.
// In debug mode, it validates that all expected hooks were called.
func (o *Owner) EndRender() {
	o.rendering = false

	first := o.renderCount == 0
	o.renderCount++
	if !o.debug || first {
		// First render complete, hook order is locked in
		return
	}
	if o.hookIndex < len(o.hookOrder) {
		panic(errors.New(errors.CodeHookOrderChanged).
			AppendDetailf("Expected %d hooks, got %d.", len(o.hookOrder), o.hookIndex))
	}
}

// RenderCount returns the number of completed renders.
func (o *Owner) RenderCount() int {
	return o.renderCount
}

// IsRendering reports whether the owner is between StartRender and EndRender.
func (o *Owner) IsRendering() bool {
	return o.rendering
}

// =============================================================================
// Hook Order Validation
// =============================================================================

// TrackHook records a hook call during render.
// Outside a render it panics with E001. In debug mode, it also validates that
// hooks are called in the same order on every render and panics with E002
// otherwise.
func (o *Owner) TrackHook(ht HookType) {
	if !o.rendering {
		panic(errors.New(errors.CodeHookOutsideRender).
			AppendDetailf("%s hook called on owner %d outside Render.", ht, o.id))
	}
	if !o.debug {
		return
	}

	if o.renderCount == 0 {
		o.hookOrder = append(o.hookOrder, ht)
	} else {
		if o.hookIndex >= len(o.hookOrder) {
			panic(errors.New(errors.CodeHookOrderChanged).
				AppendDetailf("Extra %s hook at index %d.", ht, o.hookIndex))
		}
		if expected := o.hookOrder[o.hookIndex]; expected != ht {
			panic(errors.New(errors.CodeHookOrderChanged).
				AppendDetailf("At index %d: expected %s, got %s.", o.hookIndex, expected, ht).
				WithSuggestion("Call hooks unconditionally at the top of the render function"))
		}
	}
	o.hookIndex++
}

// =============================================================================
// Hook Slot Storage for Stable Identity
// =============================================================================

// UseHookSlot returns the stored value for the current hook slot, or nil on
// the first render. The caller then creates the value and calls SetHookSlot.
//
//	func UseThing(o *Owner) *Thing {
//	    if slot := o.UseHookSlot(); slot != nil {
//	        return slot.(*Thing)
//	    }
//	    t := &Thing{}
//	    o.SetHookSlot(t)
//	    return t
//	}
func (o *Owner) UseHookSlot() any {
	idx := o.hookSlotIdx
	o.hookSlotIdx++

	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the current hook slot.
// Must be called after UseHookSlot returns nil.
func (o *Owner) SetHookSlot(value any) {
	o.hookSlots = append(o.hookSlots, value)
}

// slotMismatch builds the E003 error for a slot holding an unexpected type.
func (o *Owner) slotMismatch(ht HookType, got any) *errors.Error {
	return errors.New(errors.CodeHookSlotMismatch).
		AppendDetailf("%s hook at slot %d found %T.", ht, o.hookSlotIdx-1, got)
}
