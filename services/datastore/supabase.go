package datastore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dealmungchi/lurecrawler/logger"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// PageSize is the PostgREST page size ListBySlug reads with
const PageSize = 1000

// SupabaseStore implements Store on the Supabase PostgREST API
type SupabaseStore struct {
	http  *resty.Client
	table string
	log   *logger.Logger
}

// NewSupabaseStore creates the catalog client. baseURL is the project URL.
func NewSupabaseStore(baseURL, serviceKey, table string) *SupabaseStore {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(baseURL, "/") + "/rest/v1")
	httpClient.SetHeader("apikey", serviceKey)
	httpClient.SetAuthToken(serviceKey)
	httpClient.SetTimeout(30 * time.Second)
	httpClient.SetRetryCount(2)
	httpClient.SetRetryWaitTime(500 * time.Millisecond)

	return &SupabaseStore{
		http:  httpClient,
		table: table,
		log:   logger.ForSink("supabase"),
	}
}

func (s *SupabaseStore) path() string {
	return "/" + url.PathEscape(s.table)
}

// Exists looks the row's key up with select=id&limit=1
func (s *SupabaseStore) Exists(ctx context.Context, row Row) (bool, error) {
	var found []struct {
		ID any `json:"id"`
	}
	res, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"manufacturer_slug": "eq." + row.ManufacturerSlug,
			"slug":              "eq." + row.Slug,
			"color_name":        "eq." + row.ColorName,
			"weight":            "eq." + strconv.FormatFloat(row.Weight, 'f', -1, 64),
			"select":            "id",
			"limit":             "1",
		}).
		SetResult(&found).
		Get(s.path())
	if err != nil {
		return false, scrapeerrors.NewSink("supabase", "existence check failed", err)
	}
	if res.IsError() {
		return false, scrapeerrors.NewSink("supabase", fmt.Sprintf("existence check answered %d: %s", res.StatusCode(), res.String()), nil)
	}
	return len(found) > 0, nil
}

// Insert posts rows in one request
func (s *SupabaseStore) Insert(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	res, err := s.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(rows).
		Post(s.path())
	if err != nil {
		return scrapeerrors.NewSink("supabase", "insert failed", err)
	}
	if res.IsError() {
		return scrapeerrors.NewSink("supabase", fmt.Sprintf("insert answered %d: %s", res.StatusCode(), res.String()), nil)
	}
	s.log.Debug().Int("rows", len(rows)).Str("slug", rows[0].Slug).Msg("inserted rows")
	return nil
}

// ListBySlug pages through the product's rows PageSize at a time until a
// short page
func (s *SupabaseStore) ListBySlug(ctx context.Context, manufacturerSlug, slug string) ([]Row, error) {
	var all []Row
	for offset := 0; ; offset += PageSize {
		var page []Row
		res, err := s.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"manufacturer_slug": "eq." + manufacturerSlug,
				"slug":              "eq." + slug,
				"select":            "*",
				"order":             "id",
				"limit":             strconv.Itoa(PageSize),
				"offset":            strconv.Itoa(offset),
			}).
			SetResult(&page).
			Get(s.path())
		if err != nil {
			return nil, scrapeerrors.NewSink("supabase", "list failed", err)
		}
		if res.IsError() {
			return nil, scrapeerrors.NewSink("supabase", fmt.Sprintf("list answered %d: %s", res.StatusCode(), res.String()), nil)
		}

		all = append(all, page...)
		if len(page) < PageSize {
			return all, nil
		}
	}
}
