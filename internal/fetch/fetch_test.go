package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layarproject/layar/internal/domain"
	"github.com/layarproject/layar/internal/log"
)

func TestGetDirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient(nil, time.Second, log.NullLogger())
	body, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestGetFallsBackOnServerError(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer direct.Close()

	var proxied atomic.Bool
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The target URL must arrive encoded in the query string.
		target, err := url.QueryUnescape(r.URL.RawQuery)
		require.NoError(t, err)
		assert.Equal(t, direct.URL, target)
		proxied.Store(true)
		fmt.Fprint(w, "via proxy")
	}))
	defer proxy.Close()

	c := NewClient([]string{proxy.URL + "/?"}, time.Second, log.NullLogger())
	body, err := c.Get(context.Background(), direct.URL)
	require.NoError(t, err)
	assert.Equal(t, "via proxy", string(body))
	assert.True(t, proxied.Load())
}

func TestGetTriesProxiesInOrder(t *testing.T) {
	direct := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer direct.Close()

	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer first.Close()

	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "second proxy")
	}))
	defer second.Close()

	c := NewClient([]string{first.URL + "/?", second.URL + "/?"}, time.Second, log.NullLogger())
	body, err := c.Get(context.Background(), direct.URL)
	require.NoError(t, err)
	assert.Equal(t, "second proxy", string(body))
}

func TestGetAllAttemptsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient([]string{srv.URL + "/?"}, time.Second, log.NullLogger())
	_, err := c.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, domain.ErrAllAttemptsFailed)
}

func TestGetRespectsContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient([]string{srv.URL + "/?"}, time.Second, log.NullLogger())
	_, err := c.Get(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"layar","count":3}`)
	}))
	defer srv.Close()

	var dest struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	c := NewClient(nil, time.Second, log.NullLogger())
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, &dest))
	assert.Equal(t, "layar", dest.Name)
	assert.Equal(t, 3, dest.Count)
}

func TestGetJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	var dest map[string]any
	c := NewClient(nil, time.Second, log.NullLogger())
	err := c.GetJSON(context.Background(), srv.URL, &dest)
	assert.ErrorContains(t, err, "failed to parse response")
}
