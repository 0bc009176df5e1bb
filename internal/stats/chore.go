// Package stats derives display-ready aggregates from the member roster, chore
// list, and completion log. Every function here is pure: inputs are read-only
// snapshots and nothing is cached between calls.
package stats

import (
	"sort"

	"github.com/threepeak/choretrack/internal/model"
)

// Streak is the run of consecutive completions by the member who most recently
// completed a chore. Count is 0 and MemberID empty when the chore has no logs.
type Streak struct {
	Count    int    `json:"count"`
	MemberID string `json:"memberId,omitempty"`
}

// ChoreResult holds the per-chore statistics.
type ChoreResult struct {
	Total        int                      `json:"total"`
	Distribution []model.DistributionItem `json:"distribution"`
	Streak       Streak                   `json:"streak"`
}

// ChoreStats computes the completion count, per-member distribution, and
// current-holder streak for one chore. The log slice must be ordered
// most-recent-first; the streak walk depends on it.
func ChoreStats(choreID string, logs []model.ChoreLog, members []model.Member) ChoreResult {
	var choreLogs []model.ChoreLog
	for _, l := range logs {
		if l.ChoreID == choreID {
			choreLogs = append(choreLogs, l)
		}
	}

	distribution := make([]model.DistributionItem, 0, len(members))
	for _, m := range members {
		count := 0
		for _, l := range choreLogs {
			if l.MemberID == m.ID {
				count++
			}
		}
		distribution = append(distribution, model.DistributionItem{
			Label: m.Name,
			Value: count,
			Color: m.Color,
			ID:    m.ID,
		})
	}
	// Stable sort: members with equal counts keep roster order.
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Value > distribution[j].Value
	})

	var streak Streak
	if len(choreLogs) > 0 {
		holder := choreLogs[0].MemberID
		count := 0
		for _, l := range choreLogs {
			if l.MemberID != holder {
				break
			}
			count++
		}
		streak = Streak{Count: count, MemberID: holder}
	}

	return ChoreResult{
		Total:        len(choreLogs),
		Distribution: distribution,
		Streak:       streak,
	}
}
