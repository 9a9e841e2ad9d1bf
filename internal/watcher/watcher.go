// Package watcher re-analyzes repositories at a regular interval and emits
// alerts when their health reports change.
package watcher

import (
	"context"
	"time"

	"github.com/blackwell-systems/repolens/internal/analyzer"
)

// Snapshot captures the parts of one repository's report that alerts are
// computed from.
type Snapshot struct {
	Repo      string
	Timestamp time.Time
	Score     int
	Grade     string
	Framework string
	Warnings  []string

	// Err is set when the analysis itself failed. The other fields are zero.
	Err string
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning", "critical"
	Repo    string
	Title   string
	Message string
	Time    time.Time
}

// Watcher analyzes a fixed set of repositories at an interval and emits
// alerts when a report changes.
type Watcher struct {
	source        analyzer.Source
	repos         []analyzer.Repo
	interval      time.Duration
	previous      map[string]*Snapshot
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts

	// MinScore raises a warning when a score falls below it. 0 disables
	// the threshold.
	MinScore int
}

// New creates a Watcher over repos, fetched through src.
func New(src analyzer.Source, repos []analyzer.Repo, interval time.Duration, alertFn func(Alert)) *Watcher {
	return &Watcher{
		source:        src,
		repos:         repos,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Run takes a baseline snapshot, then checks at every interval. Blocks
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		if _, err := w.Baseline(ctx); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts, err := w.Check(ctx)
			if err != nil {
				return err
			}
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Baseline records the current state of every repository without raising
// alerts. It returns the snapshots in repository order.
func (w *Watcher) Baseline(ctx context.Context) ([]*Snapshot, error) {
	snaps, err := w.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	w.previous = index(snaps)
	return snaps, nil
}

// Check takes new snapshots, compares each against its previous state and
// returns the alerts. Identical alerts are suppressed until the underlying
// report changes.
func (w *Watcher) Check(ctx context.Context) ([]Alert, error) {
	snaps, err := w.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var raw []Alert
	for _, curr := range snaps {
		prev := w.previous[curr.Repo]
		if prev != nil {
			raw = append(raw, Compare(prev, curr)...)
		}
		if a, ok := belowThreshold(curr, w.MinScore); ok {
			raw = append(raw, a)
		}
	}

	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Repo + ":" + a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = index(snaps)
	return alerts, nil
}

// Snapshot analyzes every repository once. A failed analysis is recorded on
// its snapshot; only context cancellation aborts the pass.
func (w *Watcher) Snapshot(ctx context.Context) ([]*Snapshot, error) {
	snaps := make([]*Snapshot, 0, len(w.repos))
	for _, repo := range w.repos {
		snap := &Snapshot{Repo: repo.FullName(), Timestamp: time.Now()}

		report, err := analyzer.Run(ctx, w.source, repo)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			snap.Err = err.Error()
			snaps = append(snaps, snap)
			continue
		}

		snap.Score = report.Score
		snap.Grade = report.Grade
		snap.Framework = report.Detected.Framework
		snap.Warnings = report.Warnings
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func index(snaps []*Snapshot) map[string]*Snapshot {
	m := make(map[string]*Snapshot, len(snaps))
	for _, s := range snaps {
		m[s.Repo] = s
	}
	return m
}
