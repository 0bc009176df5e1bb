package stats

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/threepeak/choretrack/internal/model"
)

func famMembers() []model.Member {
	return []model.Member{
		{ID: "a", Name: "Alice", Color: "#111111"},
		{ID: "b", Name: "Bob", Color: "#222222"},
	}
}

func famChores() []model.Chore {
	return []model.Chore{
		{ID: "c1", Name: "Dishes", EstMinutes: 20, XP: 250, Category: "Kitchen"},
		{ID: "c2", Name: "Trash", EstMinutes: 5, XP: 100, Category: "General"},
	}
}

func logAt(id, choreID, memberID string, t time.Time) model.ChoreLog {
	return model.ChoreLog{ID: id, ChoreID: choreID, MemberID: memberID, Timestamp: model.At(t)}
}

func TestComputeFunStatsInsufficientData(t *testing.T) {
	now := time.Now()
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	someLogs := []model.ChoreLog{logAt("l1", "c1", "a", base)}

	if got := ComputeFunStats(nil, famChores(), someLogs, now, nil); got != nil {
		t.Errorf("no members: got %+v, want nil", got)
	}
	if got := ComputeFunStats(famMembers(), famChores(), nil, now, nil); got != nil {
		t.Errorf("no logs: got %+v, want nil", got)
	}
	if got := ComputeFunStats(famMembers(), famChores(), someLogs, now, nil); got == nil {
		t.Error("with members and logs: got nil, want stats")
	}
}

func TestComputeFunStatsAwards(t *testing.T) {
	// Tuesday 2024-03-12 at 10:00 local.
	day := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)
	sat := time.Date(2024, 3, 16, 10, 0, 0, 0, time.Local)
	night := time.Date(2024, 3, 12, 22, 0, 0, 0, time.Local)
	morning := time.Date(2024, 3, 12, 7, 0, 0, 0, time.Local)

	logs := []model.ChoreLog{
		// Alice: 3 completions on Dishes (20m each), one at night.
		logAt("l1", "c1", "a", night),
		logAt("l2", "c1", "a", day),
		logAt("l3", "c1", "a", day.Add(time.Hour)),
		// Bob: 2 completions, one Trash in the early morning, one on Saturday.
		logAt("l4", "c2", "b", morning),
		logAt("l5", "c1", "b", sat),
	}
	got := ComputeFunStats(famMembers(), famChores(), logs, sat.Add(24*time.Hour), nil)
	if got == nil {
		t.Fatal("got nil")
	}

	if got.Leader == nil || got.Leader.ID != "a" {
		t.Errorf("leader = %+v, want Alice", got.Leader)
	}
	// Alice 3*20 = 60m, Bob 5+20 = 25m.
	if got.TimeLord == nil || got.TimeLord.ID != "a" {
		t.Errorf("time lord = %+v, want Alice", got.TimeLord)
	}
	if got.TotalMinutes != 85 {
		t.Errorf("total minutes = %d, want 85", got.TotalMinutes)
	}
	if got.NightOwl == nil || got.NightOwl.ID != "a" {
		t.Errorf("night owl = %+v, want Alice", got.NightOwl)
	}
	if got.EarlyBird == nil || got.EarlyBird.ID != "b" {
		t.Errorf("early bird = %+v, want Bob", got.EarlyBird)
	}
	if got.WeekendWarrior == nil || got.WeekendWarrior.ID != "b" {
		t.Errorf("weekend warrior = %+v, want Bob", got.WeekendWarrior)
	}
	// Bob did 2 distinct chores, Alice only 1.
	if got.VarietyWinner == nil || got.VarietyWinner.ID != "b" {
		t.Errorf("variety winner = %+v, want Bob", got.VarietyWinner)
	}
	if got.BusiestDay != "Tuesday" {
		t.Errorf("busiest day = %q, want Tuesday", got.BusiestDay)
	}
	if got.TotalChores != 5 {
		t.Errorf("total chores = %d, want 5", got.TotalChores)
	}
}

func TestComputeFunStatsSpecialistThreshold(t *testing.T) {
	day := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)

	// Alice: 6 logs, 5 on Dishes -> qualifies at 83%.
	// Bob: 4 logs all on Trash -> 100% concentration but below the >5 cutoff.
	var logs []model.ChoreLog
	for i := 0; i < 5; i++ {
		logs = append(logs, logAt("a-d", "c1", "a", day.Add(time.Duration(i)*time.Hour)))
	}
	logs = append(logs, logAt("a-t", "c2", "a", day))
	for i := 0; i < 4; i++ {
		logs = append(logs, logAt("b-t", "c2", "b", day.Add(time.Duration(i)*time.Hour)))
	}

	got := ComputeFunStats(famMembers(), famChores(), logs, day.AddDate(0, 0, 1), nil)
	if got == nil {
		t.Fatal("got nil")
	}
	if got.Specialist == nil || got.Specialist.ID != "a" {
		t.Errorf("specialist = %+v, want Alice", got.Specialist)
	}
	if got.SpecialistRatio != 83 {
		t.Errorf("specialist ratio = %d, want 83", got.SpecialistRatio)
	}
}

func TestComputeFunStatsOwnershipFact(t *testing.T) {
	day := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)

	// Dishes: 10 logs, 7 by Alice -> ownership fact at 70%.
	// Trash: 4 logs all Bob -> below the >5 threshold, no fact.
	var logs []model.ChoreLog
	for i := 0; i < 7; i++ {
		logs = append(logs, logAt("a", "c1", "a", day.Add(time.Duration(i)*time.Minute)))
	}
	for i := 0; i < 3; i++ {
		logs = append(logs, logAt("b", "c1", "b", day.Add(time.Duration(i)*time.Minute)))
	}
	for i := 0; i < 4; i++ {
		logs = append(logs, logAt("bt", "c2", "b", day.Add(time.Duration(i)*time.Minute)))
	}

	got := ComputeFunStats(famMembers(), famChores(), logs, day.AddDate(0, 0, 1), nil)
	if got == nil {
		t.Fatal("got nil")
	}

	var dishesFact, trashFact bool
	for _, f := range got.Facts {
		if strings.Contains(f, "Alice") && strings.Contains(f, "Dishes") && strings.Contains(f, "70%") {
			dishesFact = true
		}
		if strings.Contains(f, "Trash") && strings.Contains(f, "owns") {
			trashFact = true
		}
	}
	if !dishesFact {
		t.Errorf("expected Alice/Dishes 70%% ownership fact, facts: %v", got.Facts)
	}
	if trashFact {
		t.Errorf("Trash has only 4 logs, ownership fact must not fire, facts: %v", got.Facts)
	}
}

func TestComputeFunStatsMissingChoreDefaultsMinutes(t *testing.T) {
	day := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)
	logs := []model.ChoreLog{logAt("l1", "deleted-chore", "a", day)}

	got := ComputeFunStats(famMembers(), nil, logs, day.AddDate(0, 0, 1), nil)
	if got == nil {
		t.Fatal("got nil")
	}
	if got.TotalMinutes != 10 {
		t.Errorf("total minutes = %d, want default 10", got.TotalMinutes)
	}
}

func TestComputeFunStatsBusiestHour(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.Local)
	logs := []model.ChoreLog{
		logAt("l1", "c1", "a", day.Add(15*time.Hour)),
		logAt("l2", "c1", "a", day.Add(15*time.Hour+10*time.Minute)),
		logAt("l3", "c1", "b", day.Add(9*time.Hour)),
	}
	got := ComputeFunStats(famMembers(), famChores(), logs, day.AddDate(0, 0, 1), nil)
	if got.BusiestHour != "3 PM" {
		t.Errorf("busiest hour = %q, want 3 PM", got.BusiestHour)
	}
}

func TestComputeFunStatsFactSamplingDeterministicWithSeed(t *testing.T) {
	day := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)
	var logs []model.ChoreLog
	for i := 0; i < 8; i++ {
		logs = append(logs, logAt("l", "c1", "a", day.Add(time.Duration(i)*time.Hour)))
	}

	run := func() []string {
		rng := rand.New(rand.NewPCG(7, 11))
		return ComputeFunStats(famMembers(), famChores(), logs, day.AddDate(0, 0, 1), rng).Facts
	}
	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("fact counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("facts diverge at %d with identical seed:\n%s\n%s", i, a[i], b[i])
		}
	}
	if len(a) > 10 {
		t.Errorf("returned %d facts, max is 10", len(a))
	}
}

func TestComputeFunStatsProductivityGapFact(t *testing.T) {
	day := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)
	var logs []model.ChoreLog
	for i := 0; i < 6; i++ {
		logs = append(logs, logAt("a", "c1", "a", day.Add(time.Duration(i)*time.Hour)))
	}
	for i := 0; i < 4; i++ {
		logs = append(logs, logAt("b", "c1", "b", day.Add(time.Duration(i)*time.Hour)))
	}

	got := ComputeFunStats(famMembers(), famChores(), logs, day.AddDate(0, 0, 1), nil)
	found := false
	for _, f := range got.Facts {
		// (6-4)/4 = 50% more productive.
		if strings.Contains(f, "Alice is currently 50% more productive than Bob") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected productivity gap fact, facts: %v", got.Facts)
	}
}
