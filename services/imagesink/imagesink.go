// Package imagesink copies lure color images into object storage.
package imagesink

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-resty/resty/v2"

	"github.com/dealmungchi/lurecrawler/internal/normalize"
	"github.com/dealmungchi/lurecrawler/logger"
	"github.com/dealmungchi/lurecrawler/services/cache"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// memoTTL bounds how long an uploaded image's public URL is remembered
const memoTTL = 7 * 24 * time.Hour

// Sink stores an image and returns its public URL
type Sink interface {
	Upload(ctx context.Context, sourceURL, key string) (string, error)
}

// ImageKey returns the storage key of one color image:
// maker/slug/<hash of color>.<ext>
func ImageKey(makerSlug, slug, colorName, sourceURL string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(sourceURL, "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s/%016x%s", makerSlug, slug, xxhash.Sum64String(normalize.ColorKey(colorName)), ext)
}

// SupabaseSink implements Sink on Supabase Storage
type SupabaseSink struct {
	http    *resty.Client
	fetch   *resty.Client
	baseURL string
	bucket  string
	cache   cache.CacheService
	log     *logger.Logger
}

// NewSupabaseSink creates the storage client. memo may be nil.
func NewSupabaseSink(baseURL, serviceKey, bucket string, memo cache.CacheService) *SupabaseSink {
	baseURL = strings.TrimSuffix(baseURL, "/")

	storage := resty.New()
	storage.SetBaseURL(baseURL + "/storage/v1")
	storage.SetHeader("apikey", serviceKey)
	storage.SetAuthToken(serviceKey)
	storage.SetTimeout(60 * time.Second)

	fetch := resty.New()
	fetch.SetTimeout(30 * time.Second)
	fetch.SetRetryCount(2)
	fetch.SetRetryWaitTime(time.Second)
	fetch.SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")

	return &SupabaseSink{
		http:    storage,
		fetch:   fetch,
		baseURL: baseURL,
		bucket:  bucket,
		cache:   memo,
		log:     logger.ForSink("storage"),
	}
}

// PublicURL returns the public address of key in the bucket
func (s *SupabaseSink) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}

// Upload downloads sourceURL and stores it under key, overwriting any
// previous object. Keys uploaded before are answered from the memo.
func (s *SupabaseSink) Upload(ctx context.Context, sourceURL, key string) (string, error) {
	if sourceURL == "" {
		return "", scrapeerrors.NewSink("storage", "no source image for "+key, nil)
	}

	memoKey := cache.ImageKeyPrefix + key
	if s.cache != nil {
		if v, err := s.cache.Get(memoKey); err == nil && len(v) > 0 {
			return string(v), nil
		}
	}

	img, err := s.fetch.R().SetContext(ctx).Get(sourceURL)
	if err != nil {
		return "", scrapeerrors.NewSink("storage", "image download failed: "+sourceURL, err)
	}
	if img.IsError() {
		return "", scrapeerrors.NewSink("storage", fmt.Sprintf("image download answered %d: %s", img.StatusCode(), sourceURL), nil)
	}

	contentType := img.Header().Get("Content-Type")
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}

	res, err := s.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "true").
		SetBody(img.Body()).
		Post("/object/" + s.bucket + "/" + key)
	if err != nil {
		return "", scrapeerrors.NewSink("storage", "upload failed: "+key, err)
	}
	if res.IsError() {
		return "", scrapeerrors.NewSink("storage", fmt.Sprintf("upload answered %d: %s", res.StatusCode(), res.String()), nil)
	}

	public := s.PublicURL(key)
	if s.cache != nil {
		if err := s.cache.Set(memoKey, []byte(public), memoTTL); err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("failed to memoize image url")
		}
	}
	s.log.Debug().Str("key", key).Int("bytes", len(img.Body())).Msg("uploaded image")
	return public, nil
}
