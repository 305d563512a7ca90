// internal/chart/component.go
package chart

import (
	"errors"
	"sync"

	"github.com/mwiater/trialscope/internal/logging"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/mwiater/trialscope/internal/trial"
)

// RequiredModules are the surface capabilities this component depends on.
// Surfaces load them once, before first use.
var RequiredModules = []string{"line", "bar", "scatter", "grid", "tooltip", "toolbox", "legend"}

// Option configures a Component at construction time.
type Option func(*Component)

// WithClickHandler wires an optional click callback to the surface.
func WithClickHandler(fn func(ClickEvent)) Option {
	return func(c *Component) { c.onClick = fn }
}

// WithLoading shows the surface's loading indicator until the first trial
// arrives.
func WithLoading(opts LoadingOptions) Option {
	return func(c *Component) {
		c.showLoading = true
		c.loadingOpts = opts
	}
}

// Component owns the accumulated trial history and keeps one rendering
// surface in sync with it. The experiment configuration is immutable after
// construction; the drawable region behind the surface belongs exclusively
// to this instance while mounted.
type Component struct {
	mu          sync.Mutex
	cfg         trial.ExperimentConfig
	surface     Surface
	history     *trial.History
	lastTrialNo int
	seenTrial   bool
	loaded      bool
	mounted     bool

	showLoading bool
	loadingOpts LoadingOptions
	onClick     func(ClickEvent)

	unsubClick  func()
	unsubStore  func()
	unsubResize func()
}

// NewComponent creates an unmounted chart component for one experiment run.
func NewComponent(cfg trial.ExperimentConfig, opts ...Option) *Component {
	c := &Component{
		cfg:     cfg,
		history: trial.NewHistory(cfg),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount binds the component to a surface: applies the initial empty chart
// options, wires the optional click handler, and shows the loading
// indicator when requested. Mounting twice is an error; the region behind
// a surface must have exactly one owner.
func (c *Component) Mount(s Surface) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mounted {
		return errors.New("chart component already mounted")
	}
	if s == nil {
		return errors.New("chart component needs a surface")
	}

	initial, err := BuildOptions(nil, c.cfg)
	if err != nil {
		return err
	}
	if err := s.SetOption(initial, true, true); err != nil {
		return err
	}

	c.surface = s
	if c.onClick != nil {
		c.unsubClick = s.OnClick(c.onClick)
	}
	if c.showLoading {
		s.ShowLoading(c.loadingOpts)
	}
	c.mounted = true
	return nil
}

// BindStore subscribes the component to a state store. Derivation errors on
// an update are reported to the log; they halt that render pass only.
func (c *Component) BindStore(st *store.Store) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubStore != nil {
		return
	}
	c.unsubStore = st.Subscribe(func(s store.State) {
		if err := c.OnState(s); err != nil {
			logging.LogEvent("chart update failed: %v", err)
		}
	})
}

// WatchResize subscribes the component to drawable-region size changes and
// forwards them to the surface.
func (c *Component) WatchResize(n ResizeNotifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubResize != nil {
		return
	}
	c.unsubResize = n.SubscribeResize(func(width, height int) {
		c.mu.Lock()
		s := c.surface
		mounted := c.mounted
		c.mu.Unlock()
		if !mounted || s == nil {
			return
		}
		if err := s.Resize(width, height); err != nil {
			logging.LogEvent("surface resize failed: %v", err)
		}
	})
}

// OnState reacts to a new store state.
func (c *Component) OnState(s store.State) error {
	return c.OnTrial(s.LatestTrial)
}

// OnTrial processes one trial record. A nil record, or a record whose
// TrialNo matches the previously seen one, causes no update. Otherwise the
// record is appended to the history, the chart options are recomputed from
// the whole history, and the surface receives a full non-animated replace.
func (c *Component) OnTrial(rec *trial.TrialRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted || rec == nil {
		return nil
	}
	if c.seenTrial && rec.TrialNo == c.lastTrialNo {
		logging.LogEvent("trial #%d repeated, skipping update", rec.TrialNo)
		return nil
	}

	c.history.Append(*rec)
	c.seenTrial = true
	c.lastTrialNo = rec.TrialNo

	opts, err := BuildOptions(c.history.Trials(), c.cfg)
	if err != nil {
		return err
	}
	if c.showLoading && !c.loaded {
		c.surface.HideLoading()
		c.loaded = true
	}
	return c.surface.SetOption(opts, true, false)
}

// History returns the accumulated trial history.
func (c *Component) History() *trial.History {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history
}

// Unmount stops reacting to store and resize events and disposes the
// surface. It is idempotent and must run on every teardown path; a dispose
// failure is logged and does not block the rest of the teardown.
func (c *Component) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return
	}
	for _, unsub := range []func(){c.unsubStore, c.unsubResize, c.unsubClick} {
		if unsub != nil {
			unsub()
		}
	}
	c.unsubStore, c.unsubResize, c.unsubClick = nil, nil, nil

	if err := c.surface.Dispose(); err != nil {
		logging.LogEvent("warning: surface dispose failed: %v", err)
	}
	c.surface = nil
	c.mounted = false
}
