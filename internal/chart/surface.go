// internal/chart/surface.go
package chart

// ClickEvent identifies the data point a user clicked on the surface.
type ClickEvent struct {
	SeriesName string
	DataIndex  int
}

// LoadingOptions styles the surface's loading indicator.
type LoadingOptions struct {
	Text  string
	Color string
}

// Surface is the rendering contract the chart component depends on. The
// component never reaches past it into renderer internals. Implementations
// must tolerate Dispose being called more than once.
type Surface interface {
	// SetOption applies a full options structure. With replaceMerge the new
	// options replace the prior ones instead of being merged; with silent
	// the surface skips emitting events for this update.
	SetOption(opts Options, replaceMerge, silent bool) error
	// OnClick registers a click handler and returns its unsubscribe.
	OnClick(fn func(ClickEvent)) func()
	// Resize re-lays-out the surface for a new drawable region size.
	Resize(width, height int) error
	ShowLoading(opts LoadingOptions)
	HideLoading()
	// Dispose releases the drawable region and any buffers bound to it.
	Dispose() error
}

// ResizeNotifier delivers drawable-region size changes. Subscriptions are
// explicit handles so teardown can guarantee listener cleanup.
type ResizeNotifier interface {
	SubscribeResize(fn func(width, height int)) func()
}
