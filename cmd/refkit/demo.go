package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/refkit/internal/config"
	"github.com/vango-dev/refkit/pkg/hooks"
	"github.com/vango-dev/refkit/pkg/metrics"
	"github.com/vango-dev/refkit/pkg/ref"
)

// element stands in for the live DOM node a runtime would attach.
type element struct {
	ID string
}

func (e *element) String() string {
	if e == nil {
		return "<nil>"
	}
	return "#" + e.ID
}

func demoCmd() *cobra.Command {
	var (
		renders     int
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a component that merges a local and a forwarded ref",
		Long: `Render a text field component several times. The component merges its
own ref with a ref forwarded by its parent, attaches an element, then detaches
it when the component is disposed.

The output shows which targets received the element and whether the merged
ref kept its identity across renders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if withMetrics {
				cfg.Metrics.Enabled = true
			}
			return runDemo(cmd, cfg, renders)
		},
	}

	cmd.Flags().IntVarP(&renders, "renders", "n", 2, "Number of renders")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Record and print merged ref metrics")

	return cmd
}

func runDemo(cmd *cobra.Command, cfg *config.Config, renders int) error {
	logger := cfg.NewLogger(cmd.ErrOrStderr())

	opts := []hooks.Option{
		hooks.WithLogger(logger),
		hooks.WithDebug(cfg.Debug),
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		opts = append(opts, hooks.WithObserver(metrics.New(
			metrics.WithRegistry(registry),
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithSubsystem(cfg.Metrics.Subsystem),
			metrics.WithConstLabels(prometheus.Labels(cfg.Metrics.Labels)),
		)))
	}

	parent := hooks.NewOwner(nil, opts...)
	field := hooks.NewOwner(parent)

	// The parent forwards a callback target that outlives renders.
	var forwarded []*element
	forwardedRef := ref.NewCallback(func(el *element) {
		forwarded = append(forwarded, el)
	})

	var (
		local  *ref.Holder[*element]
		merged *ref.Merged[*element]
		prev   *ref.Merged[*element]
	)

	for i := 0; i < renders; i++ {
		err := field.Render(cmd.Context(), func(ctx context.Context) {
			local = hooks.UseRef[*element](field, nil)
			merged = hooks.UseMergedRefs(field, local.Target(), forwardedRef.Target())
		})
		if err != nil {
			return err
		}

		if i == 0 {
			merged.Set(&element{ID: "name-input"})
			field.OnCleanup(func() { merged.Set(nil) })
		}

		info(cmd, "render %d: merged ref reused=%v", i+1, prev == merged)
		prev = merged
	}

	if merged == nil {
		return nil
	}

	success(cmd, "local ref: %v", local.Current())
	success(cmd, "merged ref: %v", merged.Current())

	parent.Dispose()

	info(cmd, "after unmount: local=%v merged=%v", local.Current(), merged.Current())
	info(cmd, "forwarded ref calls: %v", forwarded)

	if registry != nil {
		return printMetrics(cmd, registry)
	}
	return nil
}

func printMetrics(cmd *cobra.Command, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if pairs := m.GetLabel(); len(pairs) > 0 {
				labels := make([]string, len(pairs))
				for i, lp := range pairs {
					labels[i] = fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue())
				}
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				info(cmd, "%s %v", name, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				info(cmd, "%s count=%d sum=%v", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
