package publisher

// Publisher represents a service for publishing canonical records to
// downstream consumers
type Publisher interface {
	// Publish publishes a message to the record stream under key
	Publish(key string, message []byte) error

	// TrimStreams trims the stream to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
