// Package queue reads product URLs to scrape from the Airtable work-queue and
// writes their processing status back.
package queue

import (
	"context"
)

// Status is the processing state of a work-queue record
type Status string

const (
	StatusPending    Status = "未処理"
	StatusInProgress Status = "処理中"
	StatusDone       Status = "登録完了"
	StatusError      Status = "エラー"
)

// Item is one product page waiting to be scraped
type Item struct {
	ID        string
	URL       string
	MakerSlug string
}

// Update sets the status and note of one record
type Update struct {
	ID     string
	Status Status
	Note   string
}

// Queue is the work-queue the worker drains
type Queue interface {
	// ListPending returns every record still waiting to be processed
	ListPending(ctx context.Context) ([]Item, error)

	// UpdateStatuses writes statuses back, batching as the backend requires
	UpdateStatuses(ctx context.Context, updates []Update) error
}
