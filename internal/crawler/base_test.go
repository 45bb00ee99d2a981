package crawler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

var testSource = Source{
	Profile: lure.Profile{Manufacturer: "Test", ManufacturerSlug: "test"},
}

func TestFetchRetriesNetworkErrors(t *testing.T) {
	var calls int32
	base := newBaseCrawler(testSource, Options{MaxAttempts: 3, RetryDelay: time.Millisecond}, nil)
	base.fetchFunc = func(ctx context.Context, url string) (io.Reader, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, errors.New("connection reset by peer")
		}
		return strings.NewReader("<html><h1>ok</h1></html>"), nil
	}

	doc, err := base.fetchDocument(context.Background(), "https://maker.example.jp/p/1")
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Find("h1").Text())
	assert.Equal(t, int32(3), calls)
}

func TestFetchGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	base := newBaseCrawler(testSource, Options{MaxAttempts: 3, RetryDelay: time.Millisecond}, nil)
	base.fetchFunc = func(ctx context.Context, url string) (io.Reader, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("timeout")
	}

	_, err := base.fetchDocument(context.Background(), "https://maker.example.jp/p/1")
	require.Error(t, err)
	assert.Equal(t, scrapeerrors.ErrorTypeNetwork, scrapeerrors.TypeOf(err))
	assert.Contains(t, err.Error(), "https://maker.example.jp/p/1")
	assert.Equal(t, int32(3), calls)
}

func TestFetchDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	base := newBaseCrawler(testSource, Options{
		HTTP:        helpers.NewClient(5 * time.Second),
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, nil)

	_, err := base.fetchDocument(context.Background(), server.URL+"/missing")
	require.Error(t, err)
	assert.Equal(t, scrapeerrors.ErrorTypeNotFound, scrapeerrors.TypeOf(err))
	assert.Equal(t, int32(1), calls)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html><h1>back</h1></html>"))
	}))
	defer server.Close()

	base := newBaseCrawler(testSource, Options{
		HTTP:        helpers.NewClient(5 * time.Second),
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, nil)

	doc, err := base.fetchDocument(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "back", doc.Find("h1").Text())
	assert.Equal(t, int32(2), calls)
}

func TestFetchRateLimitBlocksSource(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	mockCache := NewMockCacheService()
	base := newBaseCrawler(testSource, Options{
		HTTP:        helpers.NewClient(5 * time.Second),
		Cache:       mockCache,
		BlockTime:   time.Minute,
		MaxAttempts: 3,
	}, nil)

	_, err := base.fetchDocument(context.Background(), server.URL)
	assert.Equal(t, scrapeerrors.ErrorTypeRateLimit, scrapeerrors.TypeOf(err))

	// The block is cached, so the next page is refused without a request
	_, err = base.fetchDocument(context.Background(), server.URL+"/other")
	assert.Equal(t, scrapeerrors.ErrorTypeRateLimit, scrapeerrors.TypeOf(err))
	assert.Equal(t, int32(1), calls)

	value, err := mockCache.Get("lure_rate_limited:test")
	assert.NoError(t, err)
	assert.Equal(t, "60", string(value))
}

func TestFetchStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	base := newBaseCrawler(testSource, Options{MaxAttempts: 3, RetryDelay: time.Hour}, nil)
	base.fetchFunc = func(ctx context.Context, url string) (io.Reader, error) {
		cancel()
		return nil, errors.New("timeout")
	}

	start := time.Now()
	_, err := base.fetchDocument(ctx, "https://maker.example.jp/p/1")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetName(t *testing.T) {
	base := newBaseCrawler(testSource, Options{}, nil)
	assert.Equal(t, "Test", base.GetName())
	assert.Equal(t, "test", base.Source().ManufacturerSlug)
	assert.Equal(t, 1, base.MaxAttempts)
}
