// Package predictor estimates the duration, XP value, and category of a chore
// from its free-text name. The values are assigned once, when the chore is
// created, and kept for the chore's lifetime.
package predictor

import "strings"

// Prediction holds the derived attributes for a chore name.
type Prediction struct {
	XP         int    `json:"xp"`
	EstMinutes int    `json:"estMinutes"`
	Category   string `json:"category"`
}

// Predict resolves a chore name in strict priority order: exact reference
// match, then fuzzy reference match, then the keyword fallback.
func Predict(name string) Prediction {
	lower := strings.ToLower(strings.TrimSpace(name))

	// Phase 1: exact match against the reference table.
	for _, entry := range referenceChores {
		if entry.name == lower {
			return entry.Prediction
		}
	}

	// Phase 2: fuzzy match. A reference entry matches when any of its words
	// longer than 3 characters appears in the input. First entry in table
	// order wins; there is no scoring among candidates.
	for _, entry := range referenceChores {
		for _, word := range strings.Fields(entry.name) {
			if len(word) > 3 && strings.Contains(lower, word) {
				return entry.Prediction
			}
		}
	}

	// Phase 3: keyword fallback.
	est := EstimateMinutes(name)
	return Prediction{
		XP:         est*10 + 50,
		EstMinutes: est,
		Category:   CategoryFor(name),
	}
}

// EstimateMinutes applies the duration keyword rules. Rules are not mutually
// exclusive, so their order is significant and must not be rearranged.
func EstimateMinutes(name string) int {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "dish", "wash", "clean", "vacuum", "mow"):
		return 20
	case containsAny(lower, "laundry", "fold", "grocer", "cook"):
		return 30
	case containsAny(lower, "trash", "feed", "bed", "mail", "wipe"):
		return 5
	case containsAny(lower, "tidy", "organize"):
		return 15
	default:
		return 10
	}
}

// CategoryFor applies the category keyword rules, same ordering caveat as
// EstimateMinutes.
func CategoryFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "kitchen", "dish", "cook", "meal", "fridge"):
		return "Kitchen"
	case containsAny(lower, "bath", "toilet", "shower"):
		return "Bathroom"
	case containsAny(lower, "bed", "laundry", "clothes", "fold"):
		return "Bedroom & Laundry"
	case containsAny(lower, "mow", "garden", "yard", "car"):
		return "Outdoor"
	case containsAny(lower, "dog", "cat", "feed", "pet"):
		return "Pets"
	default:
		return "General"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

type referenceChore struct {
	name string
	Prediction
}

// referenceChores is the static table of well-known chores. Exact and fuzzy
// matching walk it in order.
var referenceChores = []referenceChore{
	{"wash the dishes", Prediction{250, 20, "Kitchen"}},
	{"cook dinner", Prediction{350, 30, "Kitchen"}},
	{"buy groceries", Prediction{350, 30, "Kitchen"}},
	{"wipe the counters", Prediction{100, 5, "Kitchen"}},
	{"clean the fridge", Prediction{250, 20, "Kitchen"}},
	{"clean the bathroom", Prediction{250, 20, "Bathroom"}},
	{"scrub the toilet", Prediction{200, 15, "Bathroom"}},
	{"do the laundry", Prediction{350, 30, "Bedroom & Laundry"}},
	{"fold the clothes", Prediction{350, 30, "Bedroom & Laundry"}},
	{"make the beds", Prediction{100, 5, "Bedroom & Laundry"}},
	{"mow the lawn", Prediction{250, 20, "Outdoor"}},
	{"weed the garden", Prediction{250, 20, "Outdoor"}},
	{"wash the car", Prediction{350, 30, "Outdoor"}},
	{"feed the dog", Prediction{100, 5, "Pets"}},
	{"feed the cat", Prediction{100, 5, "Pets"}},
	{"walk the dog", Prediction{250, 20, "Pets"}},
	{"take out the trash", Prediction{100, 5, "General"}},
	{"vacuum the living room", Prediction{250, 20, "General"}},
	{"sweep the floor", Prediction{200, 15, "General"}},
	{"water the plants", Prediction{150, 10, "General"}},
	{"get the mail", Prediction{100, 5, "General"}},
	{"tidy the living room", Prediction{200, 15, "General"}},
}
