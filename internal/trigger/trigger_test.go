package trigger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacell/graphtable/internal/render"
	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/table"
)

func completeInputs() Inputs {
	return Inputs{
		SubjectID:    "001xx0001",
		GraphName:    "RelatedEvents",
		RootEntity:   "Event__dlm",
		SelectFields: []string{"EventType__c", "EventDate__c"},
		RowLimit:     10,
	}
}

// recordingFetch counts invocations and returns a canned envelope.
type recordingFetch struct {
	calls  int
	forced int
	env    *client.Envelope
	err    error
}

func (f *recordingFetch) fetch(_ context.Context, _ Inputs, force bool) render.Outcome {
	f.calls++
	if force {
		f.forced++
	}
	if f.err != nil {
		return render.FailureOutcome(f.err)
	}
	return render.EnvelopeOutcome(f.env)
}

func envelopeWithRows(t *testing.T, raws ...string) *client.Envelope {
	t.Helper()
	rows := make([]table.Row, 0, len(raws))
	for _, raw := range raws {
		var r table.Row
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		rows = append(rows, r)
	}
	return &client.Envelope{Success: true, Data: rows, RowCount: len(rows)}
}

func TestMissingFields_StableOrder(t *testing.T) {
	assert.Equal(t,
		[]string{"subjectId", "graphName", "rootEntity", "selectFields"},
		Inputs{}.MissingFields(),
	)

	in := completeInputs()
	in.GraphName = ""
	in.SelectFields = nil
	assert.Equal(t, []string{"graphName", "selectFields"}, in.MissingFields())
}

func TestEligible_RequiresEveryField(t *testing.T) {
	assert.True(t, completeInputs().Eligible())

	for _, clear := range []func(*Inputs){
		func(in *Inputs) { in.SubjectID = "" },
		func(in *Inputs) { in.GraphName = "" },
		func(in *Inputs) { in.RootEntity = "" },
		func(in *Inputs) { in.SelectFields = nil },
	} {
		in := completeInputs()
		clear(&in)
		assert.False(t, in.Eligible())
	}
}

func TestConfigurationMessage_NamesMissingFields(t *testing.T) {
	in := completeInputs()
	in.SubjectID = ""
	in.RootEntity = ""
	msg := ConfigurationMessage(in.MissingFields())
	assert.Equal(t, "missing required configuration: subjectId, rootEntity", msg)
}

func TestController_IncompleteInputsNeverFetch(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`)}
	c := NewController(f.fetch, table.NewDeriver(nil))

	in := completeInputs()
	in.SubjectID = ""
	state := c.SetInputs(context.Background(), in)

	assert.Equal(t, render.KindUnconfigured, state.Kind())
	assert.Contains(t, state.ConfigurationMessage(), "subjectId")
	assert.Equal(t, 0, f.calls)
}

func TestController_CompleteInputsFetchOnce(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`, `{"n":2}`)}
	c := NewController(f.fetch, table.NewDeriver(nil))

	state := c.SetInputs(context.Background(), completeInputs())
	assert.Equal(t, render.KindPopulated, state.Kind())
	assert.Equal(t, 1, f.calls)

	// Unchanged inputs do not re-query.
	state = c.SetInputs(context.Background(), completeInputs())
	assert.Equal(t, render.KindPopulated, state.Kind())
	assert.Equal(t, 1, f.calls)
}

func TestController_ChangedInputsRefetch(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`)}
	c := NewController(f.fetch, table.NewDeriver(nil))

	c.SetInputs(context.Background(), completeInputs())

	in := completeInputs()
	in.SubjectID = "001xx0002"
	c.SetInputs(context.Background(), in)

	assert.Equal(t, 2, f.calls)
}

func TestController_TransportFailureState(t *testing.T) {
	f := &recordingFetch{err: &client.APIError{StatusCode: 500, Body: []byte(`{"message":"oops"}`)}}
	c := NewController(f.fetch, table.NewDeriver(nil))

	state := c.SetInputs(context.Background(), completeInputs())
	assert.True(t, state.HasError())
	assert.Equal(t, "oops", state.ErrorMessage())
}

func TestController_RefreshExactlyOneForcedFetch(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`)}

	var kinds []render.StateKind
	c := NewController(f.fetch, table.NewDeriver(nil), WithObserver(func(s render.State) {
		kinds = append(kinds, s.Kind())
	}))

	c.SetInputs(context.Background(), completeInputs())
	require.Equal(t, 1, f.calls)
	kinds = nil

	state := c.Refresh(context.Background())
	assert.Equal(t, render.KindPopulated, state.Kind())

	// One eligibility round trip: transiently unconfigured, then loading,
	// then the terminal state. Exactly one new (forced) query.
	assert.Equal(t, []render.StateKind{render.KindUnconfigured, render.KindLoading, render.KindPopulated}, kinds)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, 1, f.forced)
}

func TestController_RefreshWithoutConfigStaysUnconfigured(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`)}
	c := NewController(f.fetch, table.NewDeriver(nil))

	state := c.Refresh(context.Background())
	assert.Equal(t, render.KindUnconfigured, state.Kind())
	assert.Equal(t, 0, f.calls)
}

func TestController_ObserverSeesLoadingBeforeResult(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`)}

	var kinds []render.StateKind
	c := NewController(f.fetch, table.NewDeriver(nil), WithObserver(func(s render.State) {
		kinds = append(kinds, s.Kind())
	}))

	c.SetInputs(context.Background(), completeInputs())
	assert.Equal(t, []render.StateKind{render.KindLoading, render.KindPopulated}, kinds)
}

func TestController_ObserverMayReenterController(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`)}

	var c *Controller
	var observed []render.StateKind
	c = NewController(f.fetch, table.NewDeriver(nil), WithObserver(func(s render.State) {
		// Reads the controller from inside the callback; must not deadlock.
		observed = append(observed, c.State().Kind())
	}))

	state := c.SetInputs(context.Background(), completeInputs())
	assert.Equal(t, render.KindPopulated, state.Kind())

	// Notifications are delivered after the transition batch completes, so
	// every re-entrant read sees the settled state.
	assert.Equal(t, []render.StateKind{render.KindPopulated, render.KindPopulated}, observed)
}

func TestController_EmptyResult(t *testing.T) {
	f := &recordingFetch{env: &client.Envelope{Success: true}}
	c := NewController(f.fetch, table.NewDeriver(nil))

	state := c.SetInputs(context.Background(), completeInputs())
	assert.True(t, state.IsEmpty())
}

func TestSignature_DistinguishesInputs(t *testing.T) {
	a := completeInputs()
	b := completeInputs()
	assert.Equal(t, a.Signature(), b.Signature())

	b.SelectFields = []string{"EventType__c"}
	assert.NotEqual(t, a.Signature(), b.Signature())

	b = completeInputs()
	b.RowLimit = 200
	assert.NotEqual(t, a.Signature(), b.Signature())
}

func TestController_ChangedRowLimitRefetches(t *testing.T) {
	f := &recordingFetch{env: envelopeWithRows(t, `{"n":1}`, `{"n":2}`)}
	c := NewController(f.fetch, table.NewDeriver(nil))

	in := completeInputs()
	in.RowLimit = 2
	c.SetInputs(context.Background(), in)
	require.Equal(t, 1, f.calls)

	// The limit is sent upstream, so raising it is a new query, not a
	// cache-shaped no-op that would under-report rows.
	in.RowLimit = 10
	state := c.SetInputs(context.Background(), in)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, render.KindPopulated, state.Kind())
	assert.False(t, state.Truncated())
}
