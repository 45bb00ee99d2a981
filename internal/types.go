package internal

import (
	"github.com/dealmungchi/lurecrawler/services/cache"
	"github.com/dealmungchi/lurecrawler/services/datastore"
	"github.com/dealmungchi/lurecrawler/services/imagesink"
	"github.com/dealmungchi/lurecrawler/services/publisher"
	"github.com/dealmungchi/lurecrawler/services/queue"
)

// Dependencies holds all service dependencies
type Dependencies struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Queue     queue.Queue
	Store     datastore.Store
	Images    imagesink.Sink
}

// Cleanup closes the services that hold connections
func (d *Dependencies) Cleanup() {
	if d.Publisher != nil {
		d.Publisher.Close()
	}
}
