package ref

// Kind identifies the shape of a ref target.
type Kind uint8

const (
	// KindNone is the absent target. Merged refs skip it.
	KindNone Kind = iota
	// KindHolder is a target with a mutable current-value slot.
	KindHolder
	// KindCallback is a target invoked with each new value.
	KindCallback
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindHolder:
		return "Holder"
	case KindCallback:
		return "Callback"
	default:
		return "Unknown"
	}
}

// Callback is the callback-shaped ref target.
//
// The wrapped function may return a cleanup function. Call hands it back to
// the caller; merged refs ignore it. A Callback's identity is its pointer, so
// keep the same *Callback across renders when the target should be considered
// unchanged.
type Callback[T any] struct {
	fn func(value T) func()
}

// NewCallback wraps fn as a callback target.
func NewCallback[T any](fn func(value T)) *Callback[T] {
	if fn == nil {
		return &Callback[T]{}
	}
	return &Callback[T]{fn: func(value T) func() {
		fn(value)
		return nil
	}}
}

// NewCallbackWithCleanup wraps a callback that returns a cleanup function.
func NewCallbackWithCleanup[T any](fn func(value T) func()) *Callback[T] {
	return &Callback[T]{fn: fn}
}

// Call invokes the callback with value and returns its cleanup, if any.
func (c *Callback[T]) Call(value T) func() {
	if c == nil || c.fn == nil {
		return nil
	}
	return c.fn(value)
}

// Target returns the callback as a ref target.
func (c *Callback[T]) Target() Target[T] {
	return CallbackTarget(c)
}

// Target is a ref target: either a *Holder or a *Callback, or absent.
//
// The zero Target is absent. Targets are comparable with ==; two targets are
// equal when they have the same kind and point at the same holder or callback.
type Target[T any] struct {
	kind     Kind
	holder   *Holder[T]
	callback *Callback[T]
}

// HolderTarget returns a holder-shaped target. A nil holder yields the absent target.
func HolderTarget[T any](h *Holder[T]) Target[T] {
	if h == nil {
		return Target[T]{}
	}
	return Target[T]{kind: KindHolder, holder: h}
}

// CallbackTarget returns a callback-shaped target. A nil callback, or one
// wrapping a nil function, yields the absent target.
func CallbackTarget[T any](c *Callback[T]) Target[T] {
	if c == nil || c.fn == nil {
		return Target[T]{}
	}
	return Target[T]{kind: KindCallback, callback: c}
}

// Func wraps fn in a new Callback and returns it as a target.
//
// Every call produces a distinct identity. Inside a render, a Func target
// makes UseMergedRefs and Cache.Merge build a new merged ref each time.
func Func[T any](fn func(value T)) Target[T] {
	if fn == nil {
		return Target[T]{}
	}
	return CallbackTarget(NewCallback(fn))
}

// Kind returns the target's shape.
func (t Target[T]) Kind() Kind {
	return t.kind
}

// IsZero reports whether the target is absent.
func (t Target[T]) IsZero() bool {
	return t.kind == KindNone
}

// Holder returns the underlying holder, or nil for other kinds.
func (t Target[T]) Holder() *Holder[T] {
	return t.holder
}

// Callback returns the underlying callback, or nil for other kinds.
func (t Target[T]) Callback() *Callback[T] {
	return t.callback
}

// Apply delivers value to the target. It reports whether anything was delivered.
func (t Target[T]) Apply(value T) bool {
	switch t.kind {
	case KindHolder:
		t.holder.Set(value)
		return true
	case KindCallback:
		t.callback.Call(value)
		return true
	default:
		return false
	}
}
