package ref

// Observer is notified about merged ref activity.
// Implementations must be cheap; they run on the render and attach paths.
type Observer interface {
	// MergedRefBuilt is called when a Cache builds a new merged ref.
	MergedRefBuilt()

	// MergedRefReused is called when a Cache returns its previous merged ref.
	MergedRefReused()

	// MergedRefPropagated is called after each Set with the number of
	// targets that received the value.
	MergedRefPropagated(targets int)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) MergedRefBuilt()         {}
func (NopObserver) MergedRefReused()        {}
func (NopObserver) MergedRefPropagated(int) {}
