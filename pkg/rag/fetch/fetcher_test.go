package fetch

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	body, err := f.Fetch(srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html><body>hello</body></html>", body)
}

func TestFetchTimesOutOnSlowSource(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("too late"))
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher()

	start := time.Now()
	_, err := f.Fetch(srv.URL)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, elapsed, Timeout+500*time.Millisecond, "deadline should fire close to the fixed budget")
}

func TestFetchRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewFetcher()
	_, err := f.Fetch(srv.URL)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestFetchServesRepeatsFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("cached page"))
	}))
	defer srv.Close()

	f := NewFetcher()

	first, err := f.Fetch(srv.URL)
	require.NoError(t, err)
	second, err := f.Fetch(srv.URL)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}
