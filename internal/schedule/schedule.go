// Package schedule covers the weekly microcycle window and the session
// planner's drill selection merge.
package schedule

import (
	"time"

	"github.com/meltforce/gkmanager/internal/drillconfig"
	"github.com/meltforce/gkmanager/internal/models"
)

// DateLayout is the ISO calendar date format used as day identity everywhere
// a session, rating or match record is keyed by day.
const DateLayout = "2006-01-02"

// WeekDates returns the seven consecutive calendar dates of the microcycle
// starting at start, in order.
func WeekDates(start time.Time) [7]string {
	var dates [7]string
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates
}

// Selection is the planner's per-category drill pick: for each moment, the
// chosen drill titles in the drill library's listing order.
type Selection map[models.Moment][]string

// Merge builds the new ordered configuration from a selection, carrying
// forward the load parameters of any drill already present in prev. Order is
// moment-enumeration order across categories and library listing order
// within one; deselected drills are dropped.
func Merge(prev []drillconfig.Assignment, sel Selection) []drillconfig.Assignment {
	prior := make(map[string]drillconfig.Assignment, len(prev))
	for _, a := range prev {
		prior[a.Title] = a
	}

	merged := []drillconfig.Assignment{}
	for _, moment := range models.Moments {
		for _, title := range sel[moment] {
			if old, ok := prior[title]; ok {
				merged = append(merged, old)
				continue
			}
			merged = append(merged, drillconfig.Assignment{Title: title})
		}
	}
	return merged
}

// ApplyLoads overwrites the load parameters of the named assignments in
// place. Titles absent from the configuration are ignored.
func ApplyLoads(assignments []drillconfig.Assignment, loads map[string]drillconfig.Assignment) {
	for i, a := range assignments {
		l, ok := loads[a.Title]
		if !ok {
			continue
		}
		assignments[i].Sets = l.Sets
		assignments[i].Reps = l.Reps
		assignments[i].Time = l.Time
	}
}
