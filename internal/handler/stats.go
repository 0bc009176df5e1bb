package handler

import (
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/threepeak/choretrack/internal/stats"
	"github.com/threepeak/choretrack/internal/tracker"
)

type StatsHandler struct {
	tracker *tracker.Tracker
}

func NewStatsHandler(t *tracker.Tracker) *StatsHandler {
	return &StatsHandler{tracker: t}
}

// HallOfFame computes the awards, leaderboards, and shuffled facts. With no
// logs or no members there is nothing to celebrate and available is false.
func (h *StatsHandler) HallOfFame(w http.ResponseWriter, r *http.Request) {
	snap := h.tracker.Snapshot()

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	fs := stats.ComputeFunStats(snap.Members, snap.Chores, snap.Logs, time.Now(), rng)
	if fs == nil {
		writeJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available": true,
		"stats":     fs,
	})
}

// Dashboard returns the aggregate view: totals, the overall distribution,
// the weekly MVP, and the average completions per day.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.tracker.Snapshot()
	now := time.Now()

	writeJSON(w, http.StatusOK, map[string]any{
		"totals": map[string]int{
			"members": len(snap.Members),
			"chores":  len(snap.Chores),
			"logs":    len(snap.Logs),
		},
		"distribution": stats.OverallDistribution(snap.Members, snap.Logs),
		"weeklyMvp":    stats.WeeklyMVP(snap.Members, snap.Logs, now),
		"avgPerDay":    stats.AvgPerDay(snap.Logs, now),
	})
}
