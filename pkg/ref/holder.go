package ref

import "sync"

// Holder holds a mutable reference to a value.
// It is the holder-shaped ref target: it has no callable behavior, the runtime
// writes the live element or instance into it and components read it later.
//
// Holder[T] is safe for concurrent access.
type Holder[T any] struct {
	value T
	isSet bool
	mu    sync.RWMutex
}

// NewHolder creates a new Holder with the given initial value.
// The holder reports IsSet() == false until the first Set.
func NewHolder[T any](initial T) *Holder[T] {
	return &Holder[T]{
		value: initial,
	}
}

// Current returns the current value of the holder.
func (h *Holder[T]) Current() T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.value
}

// Set sets the holder's value.
// This is typically called by a merged ref or by the runtime on attach.
func (h *Holder[T]) Set(value T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = value
	h.isSet = true
}

// IsSet returns true if the holder has been set since creation or the last Clear.
func (h *Holder[T]) IsSet() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isSet
}

// Clear resets the holder to its zero value.
func (h *Holder[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	var zero T
	h.value = zero
	h.isSet = false
}

// Target returns the holder as a ref target.
func (h *Holder[T]) Target() Target[T] {
	return HolderTarget(h)
}
