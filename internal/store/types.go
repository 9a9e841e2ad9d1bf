// Package store provides the SQLite cache of upstream API responses used
// for conditional requests. Analysis reports are never stored.
package store

import "time"

// CachedResponse is a successful upstream response kept for revalidation.
type CachedResponse struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	Status       int       `json:"status"`
	Body         []byte    `json:"-"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int       `json:"entries"`
	Bytes   int64     `json:"bytes"`
	Oldest  time.Time `json:"oldest,omitempty"`
	Newest  time.Time `json:"newest,omitempty"`
}
