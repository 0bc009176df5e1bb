package stats

import (
	"math"
	"sort"
	"time"

	"github.com/threepeak/choretrack/internal/model"
)

// OverallDistribution is the all-logs per-member breakdown, same shape and
// ordering rules as the per-chore distribution.
func OverallDistribution(members []model.Member, logs []model.ChoreLog) []model.DistributionItem {
	items := make([]model.DistributionItem, 0, len(members))
	for _, m := range members {
		count := 0
		for _, l := range logs {
			if l.MemberID == m.ID {
				count++
			}
		}
		items = append(items, model.DistributionItem{Label: m.Name, Value: count, Color: m.Color, ID: m.ID})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Value > items[j].Value })
	return items
}

// WeeklyMVP returns the member with the most completions in the last 7 days
// (inclusive of today). Running max with strict >, so on a tie the earliest
// roster member wins. Nil when nobody completed anything this week.
func WeeklyMVP(members []model.Member, logs []model.ChoreLog, now time.Time) *model.Member {
	cutoff := now.AddDate(0, 0, -7)
	recent := make(map[string]int)
	for _, l := range logs {
		if !l.Timestamp.Time.Before(cutoff) {
			recent[l.MemberID]++
		}
	}

	var mvp *model.Member
	best := 0
	for i := range members {
		if c := recent[members[i].ID]; c > best {
			best = c
			mvp = &members[i]
		}
	}
	return mvp
}

// AvgPerDay is the lifetime tasks-per-day figure for the dashboard summary,
// measured from the oldest log timestamp. Zero logs yields 0.
func AvgPerDay(logs []model.ChoreLog, now time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	oldest := logs[0].Timestamp.Time
	for _, l := range logs {
		if l.Timestamp.Time.Before(oldest) {
			oldest = l.Timestamp.Time
		}
	}
	days := now.Sub(oldest).Hours() / 24
	if days < 1 {
		days = 1
	}
	return int(math.Round(float64(len(logs)) / days))
}
