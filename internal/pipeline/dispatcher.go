package pipeline

// Dispatcher notifies the external processing pipeline that an image is
// ready. Dispatch is fire-and-forget: it returns before any network I/O
// begins, and no failure ever reaches the caller. The pipeline reports its
// own completion through a separate inbound callback, not through this
// interface.
type Dispatcher interface {
	Dispatch(imageID string)
}

// NopDispatcher drops every dispatch. Used when no pipeline is configured.
type NopDispatcher struct{}

// Dispatch does nothing.
func (NopDispatcher) Dispatch(imageID string) {}

var _ Dispatcher = NopDispatcher{}
