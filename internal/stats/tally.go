package stats

// tally counts occurrences by string key with default-zero reads and a
// remembered insertion order, so "top entry" is deterministic: ties go to the
// key that was counted first.
type tally struct {
	counts map[string]int
	order  []string
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

func (t *tally) get(key string) int {
	return t.counts[key]
}

// top returns the first-inserted key with the strictly highest count.
// ok is false when the tally is empty.
func (t *tally) top() (key string, count int, ok bool) {
	for _, k := range t.order {
		if t.counts[k] > count {
			key, count, ok = k, t.counts[k], true
		}
	}
	return key, count, ok
}
