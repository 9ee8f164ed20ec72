// Package trigger decides when a graph query is eligible to run and drives
// re-execution when inputs change or a manual refresh is requested.
package trigger

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/datacell/graphtable/internal/render"
	"github.com/datacell/graphtable/pkg/table"
)

// Inputs are the configuration values that scope one query attempt. They are
// treated as immutable: every change is a new Inputs value.
type Inputs struct {
	SubjectID     string
	GraphName     string
	RootEntity    string
	SelectFields  []string
	ColumnConfig  string
	RowLimit      int
	RowExpression string
}

// MissingFields returns the names of absent required inputs in stable order:
// subjectId, graphName, rootEntity, selectFields.
func (in Inputs) MissingFields() []string {
	var missing []string
	if in.SubjectID == "" {
		missing = append(missing, "subjectId")
	}
	if in.GraphName == "" {
		missing = append(missing, "graphName")
	}
	if in.RootEntity == "" {
		missing = append(missing, "rootEntity")
	}
	if len(in.SelectFields) == 0 {
		missing = append(missing, "selectFields")
	}
	return missing
}

// Eligible reports whether all required inputs are present.
func (in Inputs) Eligible() bool {
	return len(in.MissingFields()) == 0
}

// ConfigurationMessage names every missing required input.
func ConfigurationMessage(missing []string) string {
	return "missing required configuration: " + strings.Join(missing, ", ")
}

// Signature returns a stable identity for the inputs, used as the result
// cache key. Every input that shapes the fetched data participates, RowLimit
// included: the limit is sent upstream, so an envelope fetched under one
// limit must not be served for another. Field values never contain newlines,
// so "\n" is a safe joiner.
func (in Inputs) Signature() string {
	parts := []string{
		in.SubjectID,
		in.GraphName,
		in.RootEntity,
		strings.Join(in.SelectFields, ","),
		in.RowExpression,
		strconv.Itoa(in.RowLimit),
	}
	return strings.Join(parts, "\n")
}

// FetchFunc executes one query attempt. force requests that any result cache
// at the boundary be bypassed and repopulated.
type FetchFunc func(ctx context.Context, in Inputs, force bool) render.Outcome

// Observer is notified of every wholesale state replacement, in order.
type Observer func(render.State)

// Controller owns the display state for one table and re-evaluates it when
// inputs change: eligibility is recomputed on every input change and at most
// one fetch is emitted per transition.
//
// State transitions are serialized; a stale result simply becomes the next
// state (last writer wins). There are no internal retries and no cancellation
// of in-flight queries.
type Controller struct {
	mu       sync.Mutex
	inputs   Inputs
	haveRun  bool
	state    render.State
	pending  []render.State
	fetch    FetchFunc
	observer Observer
	deriver  *table.Deriver
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithObserver registers a callback invoked on every state transition.
// Transitions are delivered in order after the triggering call releases the
// controller's lock, so the observer may call back into the controller.
func WithObserver(obs Observer) ControllerOption {
	return func(c *Controller) {
		c.observer = obs
	}
}

// NewController creates a controller that runs queries through fetch and
// derives columns with deriver. The initial state is Unconfigured with every
// required input missing.
func NewController(fetch FetchFunc, deriver *table.Deriver, opts ...ControllerOption) *Controller {
	c := &Controller{
		fetch:   fetch,
		deriver: deriver,
		state:   render.Unconfigured(ConfigurationMessage(Inputs{}.MissingFields())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current display state.
func (c *Controller) State() render.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetInputs replaces the configuration inputs and re-evaluates. Incomplete
// inputs transition to Unconfigured without querying; complete inputs whose
// signature changed trigger exactly one fetch. An unchanged signature is a
// no-op once a query has run for it.
func (c *Controller) SetInputs(ctx context.Context, in Inputs) render.State {
	c.mu.Lock()

	sameSignature := c.haveRun && in.Signature() == c.inputs.Signature()
	c.inputs = in

	switch missing := in.MissingFields(); {
	case len(missing) > 0:
		c.haveRun = false
		c.transition(render.Unconfigured(ConfigurationMessage(missing)))
	case sameSignature:
		// No transition; the current state already reflects these inputs.
	default:
		c.run(ctx, in, false)
	}

	return c.unlockAndNotify()
}

// Refresh forces a re-query with the current inputs, bypassing the
// boundary's result cache. Observers see Unconfigured, then Loading, then the
// terminal state, and the boundary sees exactly one new query.
func (c *Controller) Refresh(ctx context.Context) render.State {
	c.mu.Lock()

	in := c.inputs
	if missing := in.MissingFields(); len(missing) > 0 {
		c.transition(render.Unconfigured(ConfigurationMessage(missing)))
		return c.unlockAndNotify()
	}

	// The subject is transiently absent; eligibility reads as Unconfigured,
	// never Loading.
	cleared := in
	cleared.SubjectID = ""
	c.transition(render.Unconfigured(ConfigurationMessage(cleared.MissingFields())))

	c.run(ctx, in, true)
	return c.unlockAndNotify()
}

// run performs one query attempt: Loading, fetch, then the normalized
// terminal state. Caller holds the lock.
func (c *Controller) run(ctx context.Context, in Inputs, force bool) {
	c.transition(render.Loading())

	outcome := c.fetch(ctx, in, force)

	c.haveRun = true
	c.transition(render.Normalize(outcome, in.RowLimit, in.ColumnConfig, c.deriver))
}

// transition replaces the state wholesale and queues it for the observer.
// Caller holds the lock.
func (c *Controller) transition(next render.State) {
	c.state = next
	if c.observer != nil {
		c.pending = append(c.pending, next)
	}
}

// unlockAndNotify releases the lock, delivers queued transitions to the
// observer in order, and returns the state as of the unlock. Notifying
// outside the lock keeps observers free to call back into the controller.
func (c *Controller) unlockAndNotify() render.State {
	state := c.state
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, s := range pending {
		c.observer(s)
	}
	return state
}
