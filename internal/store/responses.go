package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// GetResponse returns the cached response for url, or nil if none exists.
func (db *DB) GetResponse(ctx context.Context, url string) (*CachedResponse, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT url, etag, last_modified, status, body, fetched_at FROM http_cache WHERE url = ?",
		url,
	)

	var r CachedResponse
	var fetchedAt string
	err := row.Scan(&r.URL, &r.ETag, &r.LastModified, &r.Status, &r.Body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.FetchedAt, _ = time.Parse(time.RFC3339, fetchedAt)
	return &r, nil
}

// PutResponse inserts or replaces the cached response for r.URL. A zero
// FetchedAt is set to the current time.
func (db *DB) PutResponse(ctx context.Context, r *CachedResponse) error {
	fetchedAt := r.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	body := r.Body
	if body == nil {
		body = []byte{}
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO http_cache (url, etag, last_modified, status, body, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			etag = excluded.etag,
			last_modified = excluded.last_modified,
			status = excluded.status,
			body = excluded.body,
			fetched_at = excluded.fetched_at`,
		r.URL, r.ETag, r.LastModified, r.Status, body, fetchedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Touch refreshes the fetched_at time of a revalidated entry.
func (db *DB) Touch(ctx context.Context, url string, at time.Time) error {
	_, err := db.conn.ExecContext(ctx,
		"UPDATE http_cache SET fetched_at = ? WHERE url = ?",
		at.UTC().Format(time.RFC3339), url,
	)
	return err
}

// Prune deletes entries fetched before cutoff and returns how many were removed.
func (db *DB) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.conn.ExecContext(ctx,
		"DELETE FROM http_cache WHERE fetched_at < ?",
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Clear deletes every cached response.
func (db *DB) Clear(ctx context.Context) (int64, error) {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM http_cache")
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Stats returns entry count, body size and age range of the cache.
func (db *DB) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	var oldest, newest sql.NullString
	err := db.conn.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(LENGTH(body)), 0), MIN(fetched_at), MAX(fetched_at) FROM http_cache",
	).Scan(&s.Entries, &s.Bytes, &oldest, &newest)
	if err != nil {
		return Stats{}, err
	}
	if oldest.Valid {
		s.Oldest, _ = time.Parse(time.RFC3339, oldest.String)
	}
	if newest.Valid {
		s.Newest, _ = time.Parse(time.RFC3339, newest.String)
	}
	return s, nil
}
