// Package worker drains the work-queue: it extracts every pending product
// page, writes the rows and images to the sinks and reports the run.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dealmungchi/lurecrawler/helpers"
	"github.com/dealmungchi/lurecrawler/internal/crawler"
	"github.com/dealmungchi/lurecrawler/internal/lure"
	"github.com/dealmungchi/lurecrawler/logger"
	"github.com/dealmungchi/lurecrawler/services/datastore"
	"github.com/dealmungchi/lurecrawler/services/imagesink"
	"github.com/dealmungchi/lurecrawler/services/publisher"
	"github.com/dealmungchi/lurecrawler/services/queue"
	scrapeerrors "github.com/dealmungchi/lurecrawler/pkg/errors"
)

// Factory hands out extractors per maker slug
type Factory interface {
	Acquire(slug string) (crawler.Extractor, func(), error)
	Resolve(productURL string) (crawler.Source, bool)
}

// Summary counts what one run did
type Summary struct {
	Attempted     int `json:"attempted"`
	Succeeded     int `json:"succeeded"`
	Skipped       int `json:"skipped"`
	Errored       int `json:"errored"`
	RowsInserted  int `json:"rowsInserted"`
	RowsExisting  int `json:"rowsExisting"`
	ImageFailures int `json:"imageFailures"`
	SinkFailures  int `json:"sinkFailures"`
}

// Worker handles the extract and store process
type Worker struct {
	ctx       context.Context
	factory   Factory
	queue     queue.Queue
	store     datastore.Store
	images    imagesink.Sink
	publisher publisher.Publisher
	logger    helpers.LoggerInterface
	log       *logger.Logger

	politenessDelay time.Duration
	crawlInterval   time.Duration
}

// Deps are the collaborators of a worker. Images and Publisher may be nil.
type Deps struct {
	Factory   Factory
	Queue     queue.Queue
	Store     datastore.Store
	Images    imagesink.Sink
	Publisher publisher.Publisher
	Logger    helpers.LoggerInterface
}

// NewWorker creates a new worker
func NewWorker(ctx context.Context, deps Deps, politenessDelay, crawlInterval time.Duration) *Worker {
	return &Worker{
		ctx:             ctx,
		factory:         deps.Factory,
		queue:           deps.Queue,
		store:           deps.Store,
		images:          deps.Images,
		publisher:       deps.Publisher,
		logger:          deps.Logger,
		log:             logger.ForWorker(),
		politenessDelay: politenessDelay,
		crawlInterval:   crawlInterval,
	}
}

// Start drains the queue every crawl interval until the context ends
func (w *Worker) Start() error {
	for {
		start := time.Now()
		summary, err := w.Run(w.ctx)
		if err != nil {
			w.logger.LogError("worker", err)
		} else {
			w.logger.LogInfo("run finished in %s: %+v", time.Since(start).Round(time.Millisecond), summary)
		}

		if w.publisher != nil {
			if err := w.publisher.TrimStreams(); err != nil {
				w.logger.LogError("StreamTrimming", err)
			}
		}

		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.crawlInterval):
		}
	}
}

// Run processes every pending queue item once
func (w *Worker) Run(ctx context.Context) (Summary, error) {
	items, err := w.queue.ListPending(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list pending: %w", err)
	}
	w.log.Info().Int("pending", len(items)).Msg("queue loaded")
	return w.RunItems(ctx, items), nil
}

// group is the pending items of one maker, in queue order
type group struct {
	slug  string
	items []queue.Item
}

// RunItems processes items grouped by maker, one page at a time with the
// politeness delay between pages. Statuses are written back per group.
func (w *Worker) RunItems(ctx context.Context, items []queue.Item) Summary {
	var summary Summary
	groups, unresolved := w.groupByMaker(items)

	if len(unresolved) > 0 {
		summary.Attempted += len(unresolved)
		summary.Errored += len(unresolved)
		updates := make([]queue.Update, 0, len(unresolved))
		for _, it := range unresolved {
			updates = append(updates, queue.Update{ID: it.ID, Status: queue.StatusError, Note: "no extractor for " + it.URL})
		}
		w.flush(ctx, updates, &summary)
	}

	first := true
	for _, g := range groups {
		if ctx.Err() != nil {
			break
		}
		w.runGroup(ctx, g, &summary, &first)
	}

	w.log.Info().
		Int("attempted", summary.Attempted).
		Int("succeeded", summary.Succeeded).
		Int("skipped", summary.Skipped).
		Int("errored", summary.Errored).
		Int("rows_inserted", summary.RowsInserted).
		Int("rows_existing", summary.RowsExisting).
		Int("image_failures", summary.ImageFailures).
		Int("sink_failures", summary.SinkFailures).
		Msg("run summary")
	return summary
}

// groupByMaker keeps first-seen maker order. Items without a maker slug are
// resolved by host; those that still have none are returned separately.
func (w *Worker) groupByMaker(items []queue.Item) ([]*group, []queue.Item) {
	var groups []*group
	index := map[string]*group{}
	var unresolved []queue.Item

	for _, it := range items {
		slug := it.MakerSlug
		if slug == "" {
			src, ok := w.factory.Resolve(it.URL)
			if !ok {
				unresolved = append(unresolved, it)
				continue
			}
			slug = src.ManufacturerSlug
		}
		g, ok := index[slug]
		if !ok {
			g = &group{slug: slug}
			index[slug] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, it)
	}
	return groups, unresolved
}

func (w *Worker) runGroup(ctx context.Context, g *group, summary *Summary, first *bool) {
	ext, release, err := w.factory.Acquire(g.slug)
	defer release()

	updates := make([]queue.Update, 0, len(g.items))
	if err != nil {
		w.logger.LogError(g.slug, err)
		for _, it := range g.items {
			summary.Attempted++
			summary.Errored++
			updates = append(updates, queue.Update{ID: it.ID, Status: queue.StatusError, Note: err.Error()})
		}
		w.flush(ctx, updates, summary)
		return
	}

	inProgress := make([]queue.Update, 0, len(g.items))
	for _, it := range g.items {
		inProgress = append(inProgress, queue.Update{ID: it.ID, Status: queue.StatusInProgress})
	}
	w.flush(ctx, inProgress, summary)

	for i, it := range g.items {
		if !*first && !w.pause(ctx) {
			// hand the items not reached back to the queue
			for _, rest := range g.items[i:] {
				updates = append(updates, queue.Update{ID: rest.ID, Status: queue.StatusPending})
			}
			break
		}
		*first = false
		summary.Attempted++
		updates = append(updates, w.process(ctx, ext, it, summary))
	}
	w.flush(ctx, updates, summary)
}

// pause waits the politeness delay; false when the context ended first
func (w *Worker) pause(ctx context.Context) bool {
	if w.politenessDelay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(w.politenessDelay):
		return true
	}
}

// process extracts one page and writes it to every sink
func (w *Worker) process(ctx context.Context, ext crawler.Extractor, it queue.Item, summary *Summary) queue.Update {
	name := ext.GetName()

	rec, err := ext.Extract(ctx, it.URL)
	if err != nil {
		summary.Errored++
		w.logger.LogError(name, err)
		return queue.Update{ID: it.ID, Status: queue.StatusError, Note: errorNote(err)}
	}

	if len(rec.Weights) == 0 || len(rec.Colors) == 0 {
		summary.Skipped++
		note := fmt.Sprintf("incomplete record: %d weights, %d colors", len(rec.Weights), len(rec.Colors))
		w.log.Warn().Str("url", it.URL).Str("slug", rec.Slug).Msg(note)
		return queue.Update{ID: it.ID, Status: queue.StatusError, Note: note}
	}

	images := w.uploadImages(ctx, rec, summary)
	rows := datastore.RowsFor(rec, images)

	fresh := make([]datastore.Row, 0, len(rows))
	for _, row := range rows {
		exists, err := w.store.Exists(ctx, row)
		if err != nil {
			summary.SinkFailures++
			w.logger.LogError("datastore", err)
			return queue.Update{ID: it.ID, Status: queue.StatusError, Note: errorNote(err)}
		}
		if exists {
			summary.RowsExisting++
			continue
		}
		fresh = append(fresh, row)
	}

	if err := w.store.Insert(ctx, fresh); err != nil {
		summary.SinkFailures++
		w.logger.LogError("datastore", err)
		return queue.Update{ID: it.ID, Status: queue.StatusError, Note: errorNote(err)}
	}
	summary.RowsInserted += len(fresh)

	w.publish(rec)
	if logger.IsDebugEnabled() {
		if data, err := json.Marshal(rec); err == nil {
			w.log.Debug().RawJSON("record", data).Msg("stored record")
		}
	}

	summary.Succeeded++
	w.log.Info().
		Str("url", it.URL).
		Str("slug", rec.Slug).
		Int("inserted", len(fresh)).
		Int("rows", len(rows)).
		Msg("record stored")
	return queue.Update{ID: it.ID, Status: queue.StatusDone, Note: fmt.Sprintf("%d rows inserted, %d existing", len(fresh), len(rows)-len(fresh))}
}

// uploadImages stores every color image. A failed upload leaves that color
// with an empty image.
func (w *Worker) uploadImages(ctx context.Context, rec *lure.Record, summary *Summary) map[string]string {
	if w.images == nil {
		return nil
	}
	images := make(map[string]string, len(rec.Colors))
	for _, c := range rec.Colors {
		if c.ImageURL == "" {
			images[c.Name] = ""
			continue
		}
		key := imagesink.ImageKey(rec.ManufacturerSlug, rec.Slug, c.Name, c.ImageURL)
		public, err := w.images.Upload(ctx, c.ImageURL, key)
		if err != nil {
			summary.ImageFailures++
			w.log.Warn().Err(err).Str("slug", rec.Slug).Str("color", c.Name).Msg("image upload failed")
			images[c.Name] = ""
			continue
		}
		images[c.Name] = public
	}
	return images
}

// publish pushes the record to the stream; failures only get logged
func (w *Worker) publish(rec *lure.Record) {
	if w.publisher == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		w.logger.LogError(rec.ManufacturerSlug, err)
		return
	}
	if err := w.publisher.Publish(rec.ManufacturerSlug, data); err != nil {
		w.logger.LogError("publisher", err)
	}
}

// flush writes statuses back, even after ctx is cancelled; a queue failure
// is counted, not fatal
func (w *Worker) flush(ctx context.Context, updates []queue.Update, summary *Summary) {
	if len(updates) == 0 {
		return
	}
	if err := w.queue.UpdateStatuses(context.WithoutCancel(ctx), updates); err != nil {
		summary.SinkFailures++
		w.logger.LogError("queue", err)
	}
}

// errorNote is the short note written next to a failed queue record
func errorNote(err error) string {
	var se *scrapeerrors.ScrapeError
	if errors.As(err, &se) {
		return fmt.Sprintf("[%s] %s", se.Type, se.Message)
	}
	return err.Error()
}
