package ref

import "testing"

func TestCacheReusesStableTargets(t *testing.T) {
	obs := &countingObserver{}
	c := NewCache[bool](WithObserver(obs))
	holder := NewHolder(false)
	callback := NewCallback(func(bool) {})

	first := c.Merge(holder.Target(), callback.Target())
	second := c.Merge(holder.Target(), callback.Target())

	if first != second {
		t.Fatal("same targets should return the same merged ref")
	}
	if obs.built != 1 || obs.reused != 1 {
		t.Errorf("built=%d reused=%d, want 1 and 1", obs.built, obs.reused)
	}
	if c.Current() != first {
		t.Error("Current() should return the remembered merged ref")
	}
}

func TestCacheRebuildsOnChange(t *testing.T) {
	holder := NewHolder(0)
	other := NewHolder(0)
	callback := NewCallback(func(int) {})

	tests := []struct {
		name string
		next []Target[int]
	}{
		{"slot identity changed", []Target[int]{other.Target(), callback.Target()}},
		{"slot kind changed", []Target[int]{holder.Target(), holder.Target()}},
		{"slot became absent", []Target[int]{holder.Target(), {}}},
		{"fewer slots", []Target[int]{holder.Target()}},
		{"more slots", []Target[int]{holder.Target(), callback.Target(), other.Target()}},
		{"fresh callback", []Target[int]{holder.Target(), Func(func(int) {})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCache[int]()
			first := c.Merge(holder.Target(), callback.Target())
			second := c.Merge(tt.next...)
			if first == second {
				t.Fatal("changed targets should produce a new merged ref")
			}
		})
	}
}

func TestCacheChangedCallbackReceivesValues(t *testing.T) {
	c := NewCache[bool]()
	holder := NewHolder(false)

	var first, second bool
	m := c.Merge(holder.Target(), Func(func(v bool) { first = v }))
	m.Set(true)

	m = c.Merge(holder.Target(), Func(func(v bool) { second = v }))
	m.Set(true)

	if !first || !second {
		t.Fatalf("first=%v second=%v, want both true", first, second)
	}
}

func TestCacheReset(t *testing.T) {
	c := NewCache[int]()
	h := NewHolder(0)

	first := c.Merge(h.Target())
	c.Reset()
	if c.Current() != nil {
		t.Fatal("Current() should be nil after Reset")
	}
	if c.Merge(h.Target()) == first {
		t.Fatal("Merge after Reset should build a new merged ref")
	}
}

func TestCacheEmptyTargets(t *testing.T) {
	c := NewCache[int]()
	first := c.Merge()
	if first == nil {
		t.Fatal("Merge() with no targets should still return a merged ref")
	}
	if c.Merge() != first {
		t.Error("empty target lists should be considered equal")
	}
	first.Set(4)
	if first.Current() != 4 {
		t.Errorf("Current() = %d, want 4", first.Current())
	}
}

func TestSameTargets(t *testing.T) {
	h := NewHolder(0)
	if !SameTargets[int](nil, []Target[int]{}) {
		t.Error("nil and empty should be the same")
	}
	if !SameTargets([]Target[int]{h.Target(), {}}, []Target[int]{h.Target(), {}}) {
		t.Error("identical slots should be the same")
	}
	if SameTargets([]Target[int]{h.Target()}, []Target[int]{{}}) {
		t.Error("different slots should differ")
	}
}

func TestWithObserverNilKeepsDefault(t *testing.T) {
	c := NewCache[int](WithObserver(nil))
	// Must not panic with a nil observer.
	c.Merge(NewHolder(0).Target()).Set(1)
}
