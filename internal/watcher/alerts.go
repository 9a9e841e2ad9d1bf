package watcher

import (
	"fmt"
	"time"
)

// ScoreDropThreshold is the point loss between two checks that raises a
// warning even when the grade is unchanged.
const ScoreDropThreshold = 10

// Compare detects notable changes between two snapshots of the same
// repository and returns alerts, most severe first.
func Compare(prev, curr *Snapshot) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareCritical(prev, curr)...)
	if curr.Err != "" || prev.Err != "" {
		// Nothing to diff against a failed analysis.
		return append(alerts, compareRecovery(prev, curr)...)
	}
	alerts = append(alerts, compareWarning(prev, curr)...)
	alerts = append(alerts, compareInfo(prev, curr)...)

	return alerts
}

// compareCritical detects critical-level changes.
func compareCritical(prev, curr *Snapshot) []Alert {
	var alerts []Alert
	now := time.Now()

	if curr.Err != "" && prev.Err == "" {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Repo:    curr.Repo,
			Title:   "Analysis failing",
			Message: curr.Err,
			Time:    now,
		})
	}

	if curr.Err == "" && prev.Err == "" && gradeRank(curr.Grade) < gradeRank(prev.Grade) && curr.Grade == "Pain" {
		alerts = append(alerts, Alert{
			Level:   "critical",
			Repo:    curr.Repo,
			Title:   "Health dropped to Pain",
			Message: fmt.Sprintf("Score %d (was %d, %s)", curr.Score, prev.Score, prev.Grade),
			Time:    now,
		})
	}

	return alerts
}

// compareWarning detects warning-level changes.
func compareWarning(prev, curr *Snapshot) []Alert {
	var alerts []Alert
	now := time.Now()

	dropped := prev.Score - curr.Score
	gradeFell := gradeRank(curr.Grade) < gradeRank(prev.Grade)
	if gradeFell && curr.Grade != "Pain" {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Repo:    curr.Repo,
			Title:   fmt.Sprintf("Grade dropped to %s", curr.Grade),
			Message: fmt.Sprintf("Score %d (was %d, %s)", curr.Score, prev.Score, prev.Grade),
			Time:    now,
		})
	} else if !gradeFell && dropped >= ScoreDropThreshold {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Repo:    curr.Repo,
			Title:   "Score dropped",
			Message: fmt.Sprintf("Score fell %d points to %d", dropped, curr.Score),
			Time:    now,
		})
	}

	for _, w := range added(prev.Warnings, curr.Warnings) {
		alerts = append(alerts, Alert{
			Level:   "warning",
			Repo:    curr.Repo,
			Title:   "New warning",
			Message: w,
			Time:    now,
		})
	}

	return alerts
}

// compareInfo detects info-level changes.
func compareInfo(prev, curr *Snapshot) []Alert {
	var alerts []Alert
	now := time.Now()

	if curr.Score > prev.Score {
		msg := fmt.Sprintf("Score rose %d points to %d", curr.Score-prev.Score, curr.Score)
		if curr.Grade != prev.Grade {
			msg += fmt.Sprintf(" (%s → %s)", prev.Grade, curr.Grade)
		}
		alerts = append(alerts, Alert{
			Level:   "info",
			Repo:    curr.Repo,
			Title:   "Score improved",
			Message: msg,
			Time:    now,
		})
	}

	if resolved := added(curr.Warnings, prev.Warnings); len(resolved) > 0 {
		alerts = append(alerts, Alert{
			Level:   "info",
			Repo:    curr.Repo,
			Title:   "Warnings resolved",
			Message: fmt.Sprintf("%d resolved: %s", len(resolved), resolved[0]),
			Time:    now,
		})
	}

	if curr.Framework != prev.Framework {
		alerts = append(alerts, Alert{
			Level:   "info",
			Repo:    curr.Repo,
			Title:   "Framework changed",
			Message: fmt.Sprintf("%s → %s", prev.Framework, curr.Framework),
			Time:    now,
		})
	}

	return alerts
}

// compareRecovery reports an analysis that succeeds again after failing.
func compareRecovery(prev, curr *Snapshot) []Alert {
	if prev.Err == "" || curr.Err != "" {
		return nil
	}
	return []Alert{{
		Level:   "info",
		Repo:    curr.Repo,
		Title:   "Analysis recovered",
		Message: fmt.Sprintf("Score %d (%s)", curr.Score, curr.Grade),
		Time:    time.Now(),
	}}
}

// belowThreshold raises a warning while a score sits under minScore. Dedup in
// Check keeps it from repeating every cycle.
func belowThreshold(s *Snapshot, minScore int) (Alert, bool) {
	if minScore <= 0 || s.Err != "" || s.Score >= minScore {
		return Alert{}, false
	}
	return Alert{
		Level:   "warning",
		Repo:    s.Repo,
		Title:   "Below minimum score",
		Message: fmt.Sprintf("Score %d is under %d", s.Score, minScore),
		Time:    time.Now(),
	}, true
}

// gradeRank orders grades from worst to best. Unknown grades rank lowest.
func gradeRank(grade string) int {
	switch grade {
	case "Elite":
		return 3
	case "Good":
		return 2
	case "Risky":
		return 1
	default:
		return 0
	}
}

// added returns the entries of next that are not in prev, in next's order.
func added(prev, next []string) []string {
	seen := make(map[string]bool, len(prev))
	for _, s := range prev {
		seen[s] = true
	}
	var out []string
	for _, s := range next {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
