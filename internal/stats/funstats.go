package stats

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/threepeak/choretrack/internal/model"
	"github.com/threepeak/choretrack/internal/predictor"
	"github.com/threepeak/choretrack/internal/timeutil"
)

const (
	nightOwlHour    = 21 // completions at or after this hour count as night work
	earlyBirdHour   = 8  // completions at or before this hour count as morning work
	missingChoreMin = 10 // minutes assumed for logs whose chore was deleted
	maxFacts        = 10
)

// FunStats is the Hall of Fame: household-wide awards, leaderboards, and a
// sampled set of narrative facts.
type FunStats struct {
	Leader          *model.Member `json:"leader,omitempty"`
	TimeLord        *model.Member `json:"timeLord,omitempty"`
	NightOwl        *model.Member `json:"nightOwl,omitempty"`
	EarlyBird       *model.Member `json:"earlyBird,omitempty"`
	WeekendWarrior  *model.Member `json:"weekendWarrior,omitempty"`
	VarietyWinner   *model.Member `json:"varietyWinner,omitempty"`
	Specialist      *model.Member `json:"specialist,omitempty"`
	SpecialistRatio int           `json:"specialistRatio"`
	BusiestDay      string        `json:"busiestDay"`
	BusiestHour     string        `json:"busiestHour"`
	TotalChores     int           `json:"totalChores"`
	TotalMinutes    int           `json:"totalMinutes"`

	// Leaderboard values are completion counts; TimeLeaderboard values are
	// estimated minutes worked. Both cover every roster member, sorted
	// descending with roster order preserved on ties.
	Leaderboard     []model.DistributionItem `json:"leaderboard"`
	TimeLeaderboard []model.DistributionItem `json:"timeLeaderboard"`

	Facts []string `json:"facts"`
}

// ComputeFunStats derives the Hall of Fame from a full snapshot. It returns
// nil when there are no logs or no members; callers render that as a distinct
// locked/empty state. rng shuffles the fact pool before sampling; pass nil to
// keep the facts in template order (useful under test).
func ComputeFunStats(members []model.Member, chores []model.Chore, logs []model.ChoreLog, now time.Time, rng *rand.Rand) *FunStats {
	if len(logs) == 0 || len(members) == 0 {
		return nil
	}

	memberByID := make(map[string]*model.Member, len(members))
	for i := range members {
		memberByID[members[i].ID] = &members[i]
	}
	choreByID := make(map[string]*model.Chore, len(chores))
	for i := range chores {
		choreByID[chores[i].ID] = &chores[i]
	}

	// One pass over the log accumulates everything member- and time-keyed.
	counts := make(map[string]int, len(members))
	minutes := make(map[string]int, len(members))
	distinct := make(map[string]map[string]struct{}, len(members))
	for _, m := range members {
		counts[m.ID] = 0
		minutes[m.ID] = 0
		distinct[m.ID] = make(map[string]struct{})
	}

	dayTally := newTally()
	nightTally := newTally()
	morningTally := newTally()
	weekendTally := newTally()
	var hourCounts [24]int
	totalMinutes := 0

	for _, log := range logs {
		est := logMinutes(log, choreByID)

		counts[log.MemberID]++
		minutes[log.MemberID] += est
		totalMinutes += est

		if log.ChoreID != "" {
			if set, ok := distinct[log.MemberID]; ok {
				set[log.ChoreID] = struct{}{}
			}
		}

		t := log.Timestamp.Time
		hour := timeutil.HourOf(t)
		hourCounts[hour]++
		dayTally.add(timeutil.DayName(t))

		if hour >= nightOwlHour {
			nightTally.add(log.MemberID)
		}
		if hour <= earlyBirdHour {
			morningTally.add(log.MemberID)
		}
		if timeutil.IsWeekend(t) {
			weekendTally.add(log.MemberID)
		}
	}

	// Count and time leaderboards over the full roster, roster order on ties.
	leaderboard := make([]model.DistributionItem, 0, len(members))
	timeBoard := make([]model.DistributionItem, 0, len(members))
	for _, m := range members {
		leaderboard = append(leaderboard, model.DistributionItem{Label: m.Name, Value: counts[m.ID], Color: m.Color, ID: m.ID})
		timeBoard = append(timeBoard, model.DistributionItem{Label: m.Name, Value: minutes[m.ID], Color: m.Color, ID: m.ID})
	}
	sort.SliceStable(leaderboard, func(i, j int) bool { return leaderboard[i].Value > leaderboard[j].Value })
	sort.SliceStable(timeBoard, func(i, j int) bool { return timeBoard[i].Value > timeBoard[j].Value })

	leader := memberByID[leaderboard[0].ID]
	timeLord := memberByID[timeBoard[0].ID]
	timeLordMinutes := timeBoard[0].Value

	nightOwl := tallyWinner(nightTally, memberByID)
	earlyBird := tallyWinner(morningTally, memberByID)
	weekendWarrior := tallyWinner(weekendTally, memberByID)

	// Variety: most distinct chores, earliest roster member wins ties.
	var varietyWinner *model.Member
	varietyBest := 0
	for i := range members {
		if n := len(distinct[members[i].ID]); n > varietyBest {
			varietyBest = n
			varietyWinner = &members[i]
		}
	}

	busiestDay, _, _ := dayTally.top()

	// Specialist: among members with more than 5 logs, the one whose single
	// most-frequent chore is the biggest share of their own work. Strict >
	// keeps the earliest qualifying member on ties.
	var specialist *model.Member
	maxSpecialization := 0.0
	for i := range members {
		m := &members[i]
		if counts[m.ID] <= 5 {
			continue
		}
		myChores := newTally()
		for _, log := range logs {
			if log.MemberID == m.ID {
				myChores.add(log.ChoreID)
			}
		}
		if _, best, ok := myChores.top(); ok {
			ratio := float64(best) / float64(counts[m.ID])
			if ratio > maxSpecialization {
				maxSpecialization = ratio
				specialist = m
			}
		}
	}

	// Busiest hour: strict > over 0..23, so the earliest hour wins ties.
	busiestHour := 0
	for h := 1; h < 24; h++ {
		if hourCounts[h] > hourCounts[busiestHour] {
			busiestHour = h
		}
	}

	facts := buildFacts(factInputs{
		members:         members,
		chores:          chores,
		logs:            logs,
		counts:          counts,
		leaderboard:     leaderboard,
		timeLord:        timeLord,
		timeLordMinutes: timeLordMinutes,
		totalMinutes:    totalMinutes,
		busiestHour:     busiestHour,
		now:             now,
	})
	if rng != nil {
		rng.Shuffle(len(facts), func(i, j int) {
			facts[i], facts[j] = facts[j], facts[i]
		})
	}
	if len(facts) > maxFacts {
		facts = facts[:maxFacts]
	}

	return &FunStats{
		Leader:          leader,
		TimeLord:        timeLord,
		NightOwl:        nightOwl,
		EarlyBird:       earlyBird,
		WeekendWarrior:  weekendWarrior,
		VarietyWinner:   varietyWinner,
		Specialist:      specialist,
		SpecialistRatio: int(math.Round(maxSpecialization * 100)),
		BusiestDay:      busiestDay,
		BusiestHour:     timeutil.Hour12(busiestHour),
		TotalChores:     len(logs),
		TotalMinutes:    totalMinutes,
		Leaderboard:     leaderboard,
		TimeLeaderboard: timeBoard,
		Facts:           facts,
	}
}

// logMinutes resolves the estimated minutes for one log entry. Deleted chores
// fall back to a flat default; imported chores without a stored estimate fall
// back to the duration heuristic.
func logMinutes(log model.ChoreLog, choreByID map[string]*model.Chore) int {
	chore, ok := choreByID[log.ChoreID]
	if !ok {
		return missingChoreMin
	}
	if chore.EstMinutes > 0 {
		return chore.EstMinutes
	}
	return predictor.EstimateMinutes(chore.Name)
}

func tallyWinner(t *tally, memberByID map[string]*model.Member) *model.Member {
	id, _, ok := t.top()
	if !ok {
		return nil
	}
	return memberByID[id]
}

type factInputs struct {
	members         []model.Member
	chores          []model.Chore
	logs            []model.ChoreLog
	counts          map[string]int
	leaderboard     []model.DistributionItem
	timeLord        *model.Member
	timeLordMinutes int
	totalMinutes    int
	busiestHour     int
	now             time.Time
}

// buildFacts evaluates the fixed, ordered fact templates. Each template
// contributes zero or one string to the pool.
func buildFacts(in factInputs) []string {
	var facts []string

	calories := int(math.Round(float64(in.totalMinutes) * 4.5))
	pizza := int(math.Round(float64(calories) / 285))
	facts = append(facts, fmt.Sprintf(
		"Did you know? The family has burned approximately %d calories doing chores. That's about %d slices of pizza!",
		calories, pizza))

	wage := float64(in.totalMinutes) / 60 * 15
	facts = append(facts, fmt.Sprintf(
		"Did you know? If you hired a professional at $15/hr, this work would have cost $%.2f.", wage))

	movies := float64(in.totalMinutes) / 120
	facts = append(facts, fmt.Sprintf(
		"Did you know? You could have watched %.1f full-length movies in the time spent cleaning.", movies))

	if len(in.members) >= 2 {
		top := in.leaderboard[0]
		second := in.leaderboard[1]
		if second.Value > 0 {
			pct := int(math.Round(float64(top.Value-second.Value) / float64(second.Value) * 100))
			if pct > 0 {
				facts = append(facts, fmt.Sprintf(
					"Did you know? %s is currently %d%% more productive than %s.", top.Label, pct, second.Label))
			}
		}
	}

	for _, c := range in.chores {
		owners := newTally()
		choreTotal := 0
		for _, log := range in.logs {
			if log.ChoreID == c.ID {
				owners.add(log.MemberID)
				choreTotal++
			}
		}
		if choreTotal <= 5 {
			continue
		}
		ownerID, ownerCount, ok := owners.top()
		if !ok {
			continue
		}
		pct := int(math.Round(float64(ownerCount) / float64(choreTotal) * 100))
		if pct <= 60 {
			continue
		}
		for i := range in.members {
			if in.members[i].ID == ownerID {
				facts = append(facts, fmt.Sprintf(
					"Did you know? %s basically owns the %q task, doing %d%% of the work.",
					in.members[i].Name, c.Name, pct))
				break
			}
		}
	}

	if in.timeLord != nil {
		facts = append(facts, fmt.Sprintf(
			"Did you know? %s has spent roughly %.1f hours working. Give them a break!",
			in.timeLord.Name, float64(in.timeLordMinutes)/60))
	}

	// Weeks active is measured from the oldest timestamp, not positional
	// order, so imported logs can't skew the average.
	oldest := in.logs[0].Timestamp.Time
	for _, log := range in.logs {
		if log.Timestamp.Time.Before(oldest) {
			oldest = log.Timestamp.Time
		}
	}
	weeks := in.now.Sub(oldest).Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}
	avgPerWeek := int(math.Round(float64(len(in.logs)) / weeks))
	facts = append(facts, fmt.Sprintf(
		"Did you know? The household averages %d tasks per week.", avgPerWeek))

	facts = append(facts, fmt.Sprintf(
		"Did you know? The most productive time of day is around %s.", timeutil.Hour12(in.busiestHour)))

	return facts
}
