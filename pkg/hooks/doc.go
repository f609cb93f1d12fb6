// Package hooks is the component scope runtime used by refkit.
//
// An Owner stands for one mounted component. Each call to Owner.Render runs
// the component's render function; hooks called inside it (UseRef,
// UseMergedRefs) are matched to per-owner slots by call order, which is what
// gives refs and merged refs a stable identity from one render to the next.
//
//	owner := hooks.NewOwner(nil, hooks.WithDebug(true))
//	defer owner.Dispose()
//
//	err := owner.Render(ctx, func(ctx context.Context) {
//	    local := hooks.UseRef[*Element](owner, nil)
//	    merged := hooks.UseMergedRefs(owner, local.Target(), props.Ref)
//	    attach(merged.Target())
//	})
//
// With WithDebug(true), a render that calls hooks in a different order than
// the first render fails with error code E002. Every render is wrapped in an
// OpenTelemetry span named "refkit.render".
package hooks
