package hooks

import "github.com/vango-dev/refkit/pkg/ref"

// UseRef returns a Holder that keeps its identity across renders of o.
// initial is only used on the first render.
//
// This is a hook and MUST be called unconditionally during render.
func UseRef[T any](o *Owner, initial T) *ref.Holder[T] {
	o.TrackHook(HookRef)

	if slot := o.UseHookSlot(); slot != nil {
		h, ok := slot.(*ref.Holder[T])
		if !ok {
			panic(o.slotMismatch(HookRef, slot))
		}
		return h
	}

	h := ref.NewHolder(initial)
	o.SetHookSlot(h)
	return h
}

// UseMergedRefs merges targets into one ref for the component rendering in o.
//
// The same *ref.Merged is returned on every render for as long as the
// targets are the same slot by slot (see ref.SameTargets). A target that is
// recreated on each render, such as ref.Func, produces a new merged ref each
// time.
//
// This is a hook and MUST be called unconditionally during render.
//
// Example:
//
//	func TextField(o *hooks.Owner, forwarded ref.Target[js.Value]) {
//	    local := hooks.UseRef(o, js.Null())
//	    merged := hooks.UseMergedRefs(o, local.Target(), forwarded)
//	    // attach merged.Target() to the input element
//	}
func UseMergedRefs[T any](o *Owner, targets ...ref.Target[T]) *ref.Merged[T] {
	o.TrackHook(HookMergedRefs)

	var cache *ref.Cache[T]
	if slot := o.UseHookSlot(); slot != nil {
		c, ok := slot.(*ref.Cache[T])
		if !ok {
			panic(o.slotMismatch(HookMergedRefs, slot))
		}
		cache = c
	} else {
		cache = ref.NewCache[T](ref.WithObserver(o.observer))
		o.SetHookSlot(cache)
	}

	prev := cache.Current()
	merged := cache.Merge(targets...)
	if merged != prev {
		o.logger.Debug("merged ref built", "targets", len(targets), "render", o.renderCount)
	} else {
		o.logger.Debug("merged ref reused", "targets", len(targets), "render", o.renderCount)
	}
	return merged
}
