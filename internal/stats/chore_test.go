package stats

import (
	"testing"
	"time"

	"github.com/threepeak/choretrack/internal/model"
)

func ts(t time.Time) model.Timestamp {
	return model.At(t)
}

func testRoster() []model.Member {
	return []model.Member{
		{ID: "a", Name: "Alice", Color: "#111111"},
		{ID: "b", Name: "Bob", Color: "#222222"},
	}
}

// Logs are most-recent-first: Alice, Alice, Bob.
func testLogs(base time.Time) []model.ChoreLog {
	return []model.ChoreLog{
		{ID: "l1", ChoreID: "c1", MemberID: "a", Timestamp: ts(base)},
		{ID: "l2", ChoreID: "c1", MemberID: "a", Timestamp: ts(base.Add(-time.Hour))},
		{ID: "l3", ChoreID: "c1", MemberID: "b", Timestamp: ts(base.Add(-2 * time.Hour))},
	}
}

func TestChoreStats(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	got := ChoreStats("c1", testLogs(base), testRoster())

	if got.Total != 3 {
		t.Errorf("total = %d, want 3", got.Total)
	}
	if len(got.Distribution) != 2 {
		t.Fatalf("distribution has %d entries, want 2", len(got.Distribution))
	}
	if got.Distribution[0].ID != "a" || got.Distribution[0].Value != 2 {
		t.Errorf("distribution[0] = %+v, want Alice with 2", got.Distribution[0])
	}
	if got.Distribution[1].ID != "b" || got.Distribution[1].Value != 1 {
		t.Errorf("distribution[1] = %+v, want Bob with 1", got.Distribution[1])
	}
	if got.Streak.Count != 2 || got.Streak.MemberID != "a" {
		t.Errorf("streak = %+v, want {2 a}", got.Streak)
	}
}

func TestChoreStatsDistributionSumsToTotal(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	got := ChoreStats("c1", testLogs(base), testRoster())

	sum := 0
	for _, d := range got.Distribution {
		sum += d.Value
	}
	if sum != got.Total {
		t.Errorf("sum(distribution) = %d, total = %d", sum, got.Total)
	}
	if got.Streak.Count > got.Total {
		t.Errorf("streak %d exceeds total %d", got.Streak.Count, got.Total)
	}
}

func TestChoreStatsNoLogs(t *testing.T) {
	got := ChoreStats("missing", nil, testRoster())
	if got.Total != 0 {
		t.Errorf("total = %d, want 0", got.Total)
	}
	if got.Streak.Count != 0 || got.Streak.MemberID != "" {
		t.Errorf("streak = %+v, want empty", got.Streak)
	}
	// Zero-count members still appear in the distribution.
	if len(got.Distribution) != 2 {
		t.Errorf("distribution has %d entries, want 2", len(got.Distribution))
	}
}

func TestChoreStatsTieKeepsRosterOrder(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	logs := []model.ChoreLog{
		{ID: "l1", ChoreID: "c1", MemberID: "b", Timestamp: ts(base)},
		{ID: "l2", ChoreID: "c1", MemberID: "a", Timestamp: ts(base.Add(-time.Hour))},
	}
	got := ChoreStats("c1", logs, testRoster())
	// Alice and Bob both have 1; the stable sort keeps Alice first.
	if got.Distribution[0].ID != "a" {
		t.Errorf("distribution[0].ID = %q, want a (roster order on tie)", got.Distribution[0].ID)
	}
}

func TestChoreStatsIgnoresOtherChores(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	logs := append(testLogs(base),
		model.ChoreLog{ID: "l4", ChoreID: "c2", MemberID: "b", Timestamp: ts(base)})
	got := ChoreStats("c1", logs, testRoster())
	if got.Total != 3 {
		t.Errorf("total = %d, want 3", got.Total)
	}
}

func TestChoreStatsOrphanMemberLog(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	logs := []model.ChoreLog{
		{ID: "l1", ChoreID: "c1", MemberID: "ghost", Timestamp: ts(base)},
	}
	got := ChoreStats("c1", logs, testRoster())
	// The orphan log counts toward the total and holds the streak even though
	// no roster member matches it.
	if got.Total != 1 {
		t.Errorf("total = %d, want 1", got.Total)
	}
	if got.Streak.MemberID != "ghost" || got.Streak.Count != 1 {
		t.Errorf("streak = %+v, want {1 ghost}", got.Streak)
	}
}
