package fundwatch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "hello %s #%d", r.URL.Path, n)
	}))
	defer srv.Close()

	day := time.Date(2024, 5, 13, 10, 0, 0, 0, chinaTime)
	cache := &diskCache{base: http.DefaultTransport, dir: t.TempDir(), now: func() time.Time { return day }}
	client := &http.Client{Transport: cache}
	ctx := context.Background()

	first, err := Get(ctx, client, srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, "hello /a #1", string(first))

	again, err := Get(ctx, client, srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, string(first), string(again), "served from cache")
	assert.Equal(t, int32(1), hits.Load())

	entries, err := os.ReadDir(cache.dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^fw-[0-9a-f]{40}$`, entries[0].Name())

	// errors are never cached.
	_, err = Get(ctx, client, srv.URL+"/missing")
	assert.ErrorContains(t, err, "404")
	_, err = Get(ctx, client, srv.URL+"/missing")
	assert.Error(t, err)
	assert.Equal(t, int32(3), hits.Load())

	// the cache expires the next day in China.
	day = day.Add(14 * time.Hour)
	next, err := Get(ctx, client, srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, "hello /a #4", string(next))
}

func TestGet_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Get(context.Background(), nil, srv.URL)
	assert.ErrorContains(t, err, "503")
}
