package ref

import "sync"

// Merged is a single ref that fans every value out to several targets.
//
// It also keeps its own current-value slot, so it can be read like a Holder,
// and Target() exposes it as a callback-shaped target so it can be passed
// anywhere a single target is accepted.
type Merged[T any] struct {
	mu      sync.RWMutex
	current T
	isSet   bool

	targets  []Target[T]
	self     *Callback[T]
	observer Observer
}

// Merge combines targets into one merged ref.
//
// Absent targets are kept in place (they matter for slot identity) and
// skipped on delivery. The targets slice is copied.
func Merge[T any](targets ...Target[T]) *Merged[T] {
	return newMerged(NopObserver{}, targets)
}

func newMerged[T any](observer Observer, targets []Target[T]) *Merged[T] {
	m := &Merged[T]{
		targets:  append([]Target[T](nil), targets...),
		observer: observer,
	}
	m.self = NewCallback(m.Set)
	return m
}

// Set stores value in the merged ref's own slot, then delivers it to every
// target in input order.
//
// The own slot is written before any target runs, and no lock is held while
// targets run, so a callback may read Current() and see value.
func (m *Merged[T]) Set(value T) {
	m.mu.Lock()
	m.current = value
	m.isSet = true
	m.mu.Unlock()

	delivered := 0
	for _, t := range m.targets {
		if t.Apply(value) {
			delivered++
		}
	}
	m.observer.MergedRefPropagated(delivered)
}

// Current returns the last value the merged ref was set to.
func (m *Merged[T]) Current() T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsSet returns true once Set has been called.
func (m *Merged[T]) IsSet() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isSet
}

// Len returns the number of target slots, absent ones included.
func (m *Merged[T]) Len() int {
	return len(m.targets)
}

// Targets returns a copy of the target slots.
func (m *Merged[T]) Targets() []Target[T] {
	return append([]Target[T](nil), m.targets...)
}

// Target returns the merged ref as a callback-shaped target.
// The returned target is identical on every call.
func (m *Merged[T]) Target() Target[T] {
	return CallbackTarget(m.self)
}
