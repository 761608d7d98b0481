package repositories_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rohits-web03/robofriends/internal/config"
	"github.com/rohits-web03/robofriends/internal/models"
	"github.com/rohits-web03/robofriends/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket answers the HEAD and PUT object calls made by SnapshotStore.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]bool
	puts    []string
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodHead:
		if !b.objects[r.URL.Path] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		b.objects[r.URL.Path] = true
		b.puts = append(b.puts, r.URL.Path)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type staticLister struct {
	robots []models.Robot
	err    error
}

func (l staticLister) List(context.Context) ([]models.Robot, error) {
	return l.robots, l.err
}

func newTestSnapshotStore(t *testing.T) (*repositories.SnapshotStore, *fakeBucket) {
	t.Helper()
	bucket := &fakeBucket{objects: map[string]bool{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	store, err := repositories.NewSnapshotStore(config.SnapshotConfig{
		Endpoint:        srv.URL,
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "robots",
		Region:          "auto",
	})
	require.NoError(t, err)
	return store, bucket
}

func TestNewSnapshotStore_RequiresBucket(t *testing.T) {
	_, err := repositories.NewSnapshotStore(config.SnapshotConfig{})
	assert.ErrorIs(t, err, repositories.ErrSnapshotNotConfigured)
}

func TestSnapshotEndpoint(t *testing.T) {
	assert.Equal(t, "https://acc123.r2.cloudflarestorage.com",
		repositories.SnapshotEndpoint(config.SnapshotConfig{AccountID: "acc123", Endpoint: "ignored"}))
	assert.Equal(t, "http://minio:9000",
		repositories.SnapshotEndpoint(config.SnapshotConfig{Endpoint: "http://minio:9000"}))
}

func TestSnapshotKey(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "snapshots/robots-20261018T093005Z.json", repositories.SnapshotKey(ts))
}

func TestSnapshotStore_Export(t *testing.T) {
	store, bucket := newTestSnapshotStore(t)
	ctx := context.Background()
	robots := staticLister{robots: []models.Robot{{Name: "Rob Ot"}, {Name: "Alice"}}}

	res, err := store.Export(ctx, robots, "snapshots/a.json", false, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "snapshots/a.json", res.Key)
	assert.True(t, strings.Contains(res.URL, "/robots/snapshots/a.json"), res.URL)
	assert.Contains(t, res.URL, "X-Amz-Signature")
	assert.Equal(t, []string{"/robots/snapshots/a.json"}, bucket.puts)

	_, err = store.Export(ctx, robots, "snapshots/a.json", false, time.Minute)
	assert.ErrorIs(t, err, repositories.ErrSnapshotExists)

	_, err = store.Export(ctx, robots, "snapshots/a.json", true, time.Minute)
	require.NoError(t, err)
	assert.Len(t, bucket.puts, 2)
}

func TestSnapshotStore_ExportListError(t *testing.T) {
	store, bucket := newTestSnapshotStore(t)
	boom := errors.New("boom")

	_, err := store.Export(context.Background(), staticLister{err: boom}, "snapshots/b.json", false, time.Minute)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, bucket.puts)
}
