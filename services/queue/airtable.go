package queue

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/dealmungchi/lurecrawler/logger"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// Airtable field names of the URL and maker tables
const (
	FieldURL    = "URL"
	FieldStatus = "ステータス"
	FieldMaker  = "メーカー"
	FieldNote   = "備考"
	FieldSlug   = "Slug"
)

// MaxBatch is the most records Airtable accepts in one update request
const MaxBatch = 10

// AirtableOptions configures the Airtable client
type AirtableOptions struct {
	BaseURL    string
	APIKey     string
	BaseID     string
	URLTable   string
	MakerTable string
	BatchDelay time.Duration
	// RequestsPerSecond paces every request; Airtable allows 5 per base
	RequestsPerSecond float64
}

// AirtableQueue implements Queue on the Airtable REST API
type AirtableQueue struct {
	http       *resty.Client
	opts       AirtableOptions
	log        *logger.Logger
	makerSlugs map[string]string
}

type airtableRecord struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type airtableList struct {
	Records []airtableRecord `json:"records"`
	Offset  string           `json:"offset"`
}

// NewAirtableQueue creates the work-queue client
func NewAirtableQueue(opts AirtableOptions) *AirtableQueue {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(opts.BaseURL, "/") + "/v0/" + url.PathEscape(opts.BaseID))
	httpClient.SetAuthToken(opts.APIKey)
	httpClient.SetTimeout(30 * time.Second)
	httpClient.SetRetryCount(3)
	httpClient.SetRetryWaitTime(time.Second)
	httpClient.AddRetryCondition(func(res *resty.Response, err error) bool {
		return err == nil && res.StatusCode() == http.StatusTooManyRequests
	})

	limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &AirtableQueue{
		http: httpClient,
		opts: opts,
		log:  logger.ForSink("airtable"),
	}
}

// ListMakers returns the maker table as record id → manufacturer slug
func (q *AirtableQueue) ListMakers(ctx context.Context) (map[string]string, error) {
	records, err := q.listAll(ctx, q.opts.MakerTable, nil)
	if err != nil {
		return nil, err
	}
	makers := make(map[string]string, len(records))
	for _, r := range records {
		if slug := stringField(r.Fields, FieldSlug); slug != "" {
			makers[r.ID] = strings.ToLower(slug)
		}
	}
	return makers, nil
}

// ListPending returns the URL records whose status is 未処理, with their
// linked maker resolved to a slug
func (q *AirtableQueue) ListPending(ctx context.Context) ([]Item, error) {
	if q.makerSlugs == nil {
		makers, err := q.ListMakers(ctx)
		if err != nil {
			return nil, err
		}
		q.makerSlugs = makers
	}

	records, err := q.listAll(ctx, q.opts.URLTable, map[string]string{
		"filterByFormula": fmt.Sprintf("{%s}='%s'", FieldStatus, StatusPending),
	})
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(records))
	for _, r := range records {
		u := stringField(r.Fields, FieldURL)
		if u == "" {
			continue
		}
		item := Item{ID: r.ID, URL: u}
		if links, ok := r.Fields[FieldMaker].([]any); ok && len(links) > 0 {
			if id, ok := links[0].(string); ok {
				item.MakerSlug = q.makerSlugs[id]
			}
		}
		items = append(items, item)
	}
	q.log.Info().Int("pending", len(items)).Msg("listed work-queue")
	return items, nil
}

// UpdateStatuses patches records in batches of MaxBatch with BatchDelay
// between batches
func (q *AirtableQueue) UpdateStatuses(ctx context.Context, updates []Update) error {
	for start := 0; start < len(updates); start += MaxBatch {
		if start > 0 && q.opts.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(q.opts.BatchDelay):
			}
		}

		end := min(start+MaxBatch, len(updates))
		records := make([]airtableRecord, 0, end-start)
		for _, u := range updates[start:end] {
			fields := map[string]any{FieldStatus: string(u.Status)}
			if u.Note != "" || u.Status == StatusDone {
				fields[FieldNote] = u.Note
			}
			records = append(records, airtableRecord{ID: u.ID, Fields: fields})
		}

		res, err := q.http.R().
			SetContext(ctx).
			SetBody(map[string]any{"records": records}).
			Patch("/" + url.PathEscape(q.opts.URLTable))
		if err != nil {
			return scrapeerrors.NewSink("airtable", "status update failed", err)
		}
		if res.IsError() {
			return scrapeerrors.NewSink("airtable", fmt.Sprintf("status update answered %d: %s", res.StatusCode(), res.String()), nil)
		}
	}
	return nil
}

// listAll follows Airtable's offset pagination to the end
func (q *AirtableQueue) listAll(ctx context.Context, table string, params map[string]string) ([]airtableRecord, error) {
	var all []airtableRecord
	offset := ""
	for {
		var page airtableList
		req := q.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("pageSize", "100").
			SetResult(&page)
		if offset != "" {
			req.SetQueryParam("offset", offset)
		}

		res, err := req.Get("/" + url.PathEscape(table))
		if err != nil {
			return nil, scrapeerrors.NewSink("airtable", "list "+table+" failed", err)
		}
		if res.IsError() {
			return nil, scrapeerrors.NewSink("airtable", fmt.Sprintf("list %s answered %d: %s", table, res.StatusCode(), res.String()), nil)
		}

		all = append(all, page.Records...)
		if page.Offset == "" {
			return all, nil
		}
		offset = page.Offset
	}
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return strings.TrimSpace(s)
}
