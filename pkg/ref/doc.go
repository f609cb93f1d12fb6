// Package ref provides ref targets and merged refs.
//
// A ref target receives the live element or instance a component is attached
// to. It is either a Holder, whose current value is read later, or a
// Callback, which is invoked with each new value. Target is the tagged
// variant over both; its zero value is the absent target.
//
// # Merging
//
// When one element must be handed to several consumers, Merge combines their
// targets into a single Merged ref:
//
//	input := ref.NewHolder[js.Value](js.Null())
//	measure := ref.NewCallback(func(el js.Value) { resizeObserver.Observe(el) })
//
//	merged := ref.Merge(input.Target(), measure.Target())
//	merged.Set(el) // input.Current() == el, measure was called with el
//
// Values are delivered synchronously, in input order, and the merged ref's
// own Current() is updated first.
//
// # Identity
//
// Runtimes compare refs by identity to decide whether to detach and reattach.
// Cache keeps the last merged ref and returns it again as long as the
// targets are the same slot by slot (see SameTargets). Components normally
// get this through hooks.UseMergedRefs.
package ref
