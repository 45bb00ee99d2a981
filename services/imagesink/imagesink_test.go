package imagesink

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/services/cache"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *memoryCache) Set(key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

type fakeStorage struct {
	mu        sync.Mutex
	downloads int
	uploads   map[string][]byte
	types     map[string]string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/images/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.downloads++
		f.mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "missing.jpg") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("PNGDATA"))
	})
	mux.HandleFunc("/storage/v1/object/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, "Bearer svc-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		key := strings.TrimPrefix(r.URL.Path, "/storage/v1/object/lure-images/")
		f.mu.Lock()
		f.uploads[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		f.mu.Unlock()
		w.Write([]byte(`{"Key":"lure-images/` + key + `"}`))
	})
	return mux
}

func TestImageKey(t *testing.T) {
	a := ImageKey("duo", "realis-120sp", "Ghost Minnow", "https://duo.example/img/a.PNG?v=3")
	b := ImageKey("duo", "realis-120sp", "ghost  minnow", "https://duo.example/img/b.png")
	c := ImageKey("duo", "realis-120sp", "Chart Back", "https://duo.example/img/c")

	assert.True(t, strings.HasPrefix(a, "duo/realis-120sp/"))
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.True(t, strings.HasSuffix(c, ".jpg"))
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, b)
}

func TestUploadStoresAndMemoizes(t *testing.T) {
	fake := newFakeStorage()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	memo := newMemoryCache()
	sink := NewSupabaseSink(server.URL, "svc-key", "lure-images", memo)
	key := ImageKey("jackall", "tn60", "Red Craw", server.URL+"/images/red.png")

	public, err := sink.Upload(context.Background(), server.URL+"/images/red.png", key)
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/storage/v1/object/public/lure-images/"+key, public)
	assert.Equal(t, []byte("PNGDATA"), fake.uploads[key])
	assert.Equal(t, "image/png", fake.types[key])

	cached, err := memo.Get(cache.ImageKeyPrefix + key)
	require.NoError(t, err)
	assert.Equal(t, public, string(cached))

	again, err := sink.Upload(context.Background(), server.URL+"/images/red.png", key)
	require.NoError(t, err)
	assert.Equal(t, public, again)
	assert.Equal(t, 1, fake.downloads)
}

func TestUploadFailures(t *testing.T) {
	fake := newFakeStorage()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	sink := NewSupabaseSink(server.URL, "svc-key", "lure-images", nil)

	_, err := sink.Upload(context.Background(), "", "duo/x/1.jpg")
	require.Error(t, err)

	_, err = sink.Upload(context.Background(), server.URL+"/images/missing.jpg", "duo/x/2.jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Empty(t, fake.uploads)
}
