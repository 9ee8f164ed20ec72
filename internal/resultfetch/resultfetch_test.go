package resultfetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacell/graphtable/internal/cache"
	"github.com/datacell/graphtable/internal/render"
	"github.com/datacell/graphtable/internal/rowextract"
	"github.com/datacell/graphtable/internal/trigger"
	"github.com/datacell/graphtable/pkg/client"
	"github.com/datacell/graphtable/pkg/table"
)

func testInputs() trigger.Inputs {
	return trigger.Inputs{
		SubjectID:    "001xx0001",
		GraphName:    "RelatedEvents",
		RootEntity:   "Event__dlm",
		SelectFields: []string{"name"},
		RowLimit:     10,
	}
}

func newFetcher(t *testing.T, handler http.HandlerFunc) (*Fetcher, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rc, err := cache.NewResultCache(16)
	require.NoError(t, err)

	c := client.New(client.WithBaseURL(srv.URL))
	return New(c, rc, rowextract.New(nil)), srv
}

func TestFetch_CachesBySignature(t *testing.T) {
	var calls atomic.Int64
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true,"rowCount":1,"data":[{"name":"a"}]}`))
	})

	out := f.Fetch(context.Background(), testInputs(), false)
	require.Nil(t, out.Err)
	assert.Equal(t, int64(1), calls.Load())

	// Same signature served from cache.
	out = f.Fetch(context.Background(), testInputs(), false)
	require.Nil(t, out.Err)
	assert.Equal(t, int64(1), calls.Load())

	// Different subject re-queries.
	in := testInputs()
	in.SubjectID = "001xx0002"
	f.Fetch(context.Background(), in, false)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetch_ForceBypassesCache(t *testing.T) {
	var calls atomic.Int64
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true,"rowCount":1,"data":[{"name":"a"}]}`))
	})

	f.Fetch(context.Background(), testInputs(), false)
	f.Fetch(context.Background(), testInputs(), true)
	assert.Equal(t, int64(2), calls.Load())

	// Forced result repopulated the cache.
	f.Fetch(context.Background(), testInputs(), false)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetch_TransportFailureNotCached(t *testing.T) {
	var calls atomic.Int64
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"down"}`))
	})

	out := f.Fetch(context.Background(), testInputs(), false)
	require.NotNil(t, out.Err)

	out = f.Fetch(context.Background(), testInputs(), false)
	require.NotNil(t, out.Err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetch_RowExpressionProjects(t *testing.T) {
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"rowCount":1,"data":[{"node":{"name":"a"},"cursor":"x"}]}`))
	})

	in := testInputs()
	in.RowExpression = ".node"
	out := f.Fetch(context.Background(), in, false)
	require.Nil(t, out.Err)
	require.Len(t, out.Envelope.Data, 1)
	assert.True(t, out.Envelope.Data[0].Has("name"))
	assert.False(t, out.Envelope.Data[0].Has("cursor"))
}

func TestInvalidate_DropsCachedEntry(t *testing.T) {
	var calls atomic.Int64
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"success":true,"rowCount":0}`))
	})

	f.Fetch(context.Background(), testInputs(), false)
	f.Invalidate(testInputs())
	f.Fetch(context.Background(), testInputs(), false)
	assert.Equal(t, int64(2), calls.Load())
}

func TestFetch_ChangedRowLimitRequeries(t *testing.T) {
	records := []string{`{"n":1}`, `{"n":2}`, `{"n":3}`, `{"n":4}`, `{"n":5}`}
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		var req client.GraphQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		page := records
		if req.Limit > 0 && req.Limit < len(page) {
			page = page[:req.Limit]
		}
		body := `{"success":true,"rowCount":` + strconv.Itoa(len(page)) +
			`,"data":[` + strings.Join(page, ",") + `]}`
		w.Write([]byte(body))
	})

	in := testInputs()
	in.RowLimit = 2
	out := f.Fetch(context.Background(), in, false)
	require.Nil(t, out.Err)
	require.Len(t, out.Envelope.Data, 2)

	state := render.Normalize(out, in.RowLimit, "", table.NewDeriver(nil))
	assert.True(t, state.Truncated())

	// Raising the limit must not serve the smaller cached page.
	in.RowLimit = 10
	out = f.Fetch(context.Background(), in, false)
	require.Nil(t, out.Err)
	require.Len(t, out.Envelope.Data, 5)

	state = render.Normalize(out, in.RowLimit, "", table.NewDeriver(nil))
	assert.False(t, state.Truncated())
	assert.Equal(t, "5 record(s) found", state.RowCountMessage())
}

func TestFetch_OutcomeIsTaggedUnion(t *testing.T) {
	f, _ := newFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"rowCount":0}`))
	})

	out := f.Fetch(context.Background(), testInputs(), false)
	assert.NotNil(t, out.Envelope)
	assert.Nil(t, out.Err)
	assert.Equal(t, render.KindEmpty, render.Normalize(out, 10, "", table.NewDeriver(nil)).Kind())
}
