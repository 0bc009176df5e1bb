package model

// Snapshot is the full persisted state of one tracker instance. It is the unit
// of load/save, export/import, and remote backup.
type Snapshot struct {
	Members []Member   `json:"members"`
	Chores  []Chore    `json:"chores"`
	Logs    []ChoreLog `json:"logs"`
}

// Normalize replaces nil collections with empty ones so that a snapshot
// deserialized from a partial payload is safe to iterate and re-serialize.
func (s *Snapshot) Normalize() {
	if s.Members == nil {
		s.Members = []Member{}
	}
	if s.Chores == nil {
		s.Chores = []Chore{}
	}
	if s.Logs == nil {
		s.Logs = []ChoreLog{}
	}
}

// Clone returns a deep copy. Readers get clones so that the statistics
// engines can never mutate tracker-owned state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Members: make([]Member, len(s.Members)),
		Chores:  make([]Chore, len(s.Chores)),
		Logs:    make([]ChoreLog, len(s.Logs)),
	}
	copy(out.Members, s.Members)
	copy(out.Chores, s.Chores)
	copy(out.Logs, s.Logs)
	return out
}

// MemberByID returns the member with the given id, or nil. Logs may reference
// deleted members; callers fall back to an "Unknown" label.
func (s Snapshot) MemberByID(id string) *Member {
	for i := range s.Members {
		if s.Members[i].ID == id {
			return &s.Members[i]
		}
	}
	return nil
}

// ChoreByID returns the chore with the given id, or nil.
func (s Snapshot) ChoreByID(id string) *Chore {
	for i := range s.Chores {
		if s.Chores[i].ID == id {
			return &s.Chores[i]
		}
	}
	return nil
}
