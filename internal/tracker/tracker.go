// Package tracker owns the mutable member/chore/log collections for the
// active instance. All mutations are serialized behind one mutex and every
// successful mutation persists the whole snapshot; the statistics engines only
// ever see read-only copies.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/threepeak/choretrack/internal/model"
	"github.com/threepeak/choretrack/internal/predictor"
	"github.com/threepeak/choretrack/internal/store"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNotFound     = errors.New("not found")
)

type Tracker struct {
	mu         sync.Mutex
	store      *store.SnapshotStore
	logger     *slog.Logger
	instanceID string
	snap       model.Snapshot
}

// New loads the snapshot for the given instance id (blank means the default
// instance) and returns a tracker bound to it.
func New(st *store.SnapshotStore, instanceID string, logger *slog.Logger) (*Tracker, error) {
	t := &Tracker{store: st, logger: logger}
	if err := t.SetInstance(instanceID); err != nil {
		return nil, err
	}
	return t, nil
}

// SetInstance switches the active instance and loads its snapshot. An unknown
// instance starts empty; it is created in the store on the first mutation.
func (t *Tracker) SetInstance(instanceID string) error {
	instanceID = strings.TrimSpace(instanceID)
	if instanceID == "" {
		instanceID = store.DefaultInstanceID
	}

	snap, err := t.store.Load(instanceID)
	if err != nil {
		return fmt.Errorf("load instance %q: %w", instanceID, err)
	}
	if snap == nil {
		snap = &model.Snapshot{}
		snap.Normalize()
	}
	sortLogsRecentFirst(snap.Logs)

	t.mu.Lock()
	t.instanceID = instanceID
	t.snap = *snap
	t.mu.Unlock()

	t.logger.Info("instance loaded", "instance_id", instanceID,
		"members", len(snap.Members), "chores", len(snap.Chores), "logs", len(snap.Logs))
	return nil
}

// InstanceID returns the active instance id.
func (t *Tracker) InstanceID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.instanceID
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() model.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Clone()
}

// AddMember creates a member with a color derived from the name.
func (t *Tracker) AddMember(name string) (model.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Member{}, ErrNameRequired
	}

	m := model.Member{
		ID:       uuid.NewString(),
		Name:     name,
		Color:    model.GenerateColor(name),
		JoinedAt: model.Now(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Members = append(t.snap.Members, m)
	return m, t.save()
}

// DeleteMember removes the member. Logs referencing it are intentionally left
// in place; read paths resolve them to an "Unknown" label.
func (t *Tracker) DeleteMember(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.snap.Members[:0]
	found := false
	for _, m := range t.snap.Members {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return ErrNotFound
	}
	t.snap.Members = kept
	return t.save()
}

// AddChore creates a chore. Duration, XP, and category are predicted from the
// name once, here, and never recomputed.
func (t *Tracker) AddChore(name string) (model.Chore, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Chore{}, ErrNameRequired
	}

	p := predictor.Predict(name)

	t.mu.Lock()
	defer t.mu.Unlock()
	c := model.Chore{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  model.Now(),
		Order:      len(t.snap.Chores),
		Category:   p.Category,
		XP:         p.XP,
		EstMinutes: p.EstMinutes,
	}
	t.snap.Chores = append(t.snap.Chores, c)
	return c, t.save()
}

// DeleteChore removes the chore, leaving its logs in place.
func (t *Tracker) DeleteChore(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.snap.Chores[:0]
	found := false
	for _, c := range t.snap.Chores {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return ErrNotFound
	}
	t.snap.Chores = kept
	return t.save()
}

// LogChore records a completion. A nil at means "now"; a non-nil at is a
// manually backdated entry. The new log is prepended so the collection stays
// most-recent-first.
func (t *Tracker) LogChore(choreID, memberID string, at *time.Time) (model.ChoreLog, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snap.ChoreByID(choreID) == nil {
		return model.ChoreLog{}, fmt.Errorf("chore %q: %w", choreID, ErrNotFound)
	}
	if t.snap.MemberByID(memberID) == nil {
		return model.ChoreLog{}, fmt.Errorf("member %q: %w", memberID, ErrNotFound)
	}

	log := model.ChoreLog{
		ID:       uuid.NewString(),
		ChoreID:  choreID,
		MemberID: memberID,
	}
	if at != nil {
		log.Timestamp = model.At(*at)
		log.IsManual = true
	} else {
		log.Timestamp = model.Now()
	}

	t.snap.Logs = append([]model.ChoreLog{log}, t.snap.Logs...)
	// A backdated entry may belong deeper in the list; restore recency order
	// so the streak walk stays correct.
	if log.IsManual {
		sortLogsRecentFirst(t.snap.Logs)
	}
	return log, t.save()
}

// DeleteLog removes a single log entry.
func (t *Tracker) DeleteLog(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	kept := t.snap.Logs[:0]
	found := false
	for _, l := range t.snap.Logs {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return ErrNotFound
	}
	t.snap.Logs = kept
	return t.save()
}

// ExportJSON serializes the snapshot as indented JSON.
func (t *Tracker) ExportJSON() ([]byte, error) {
	snap := t.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return data, nil
}

// ImportJSON replaces the whole snapshot with the given payload. The import is
// all-or-nothing: a malformed payload leaves the current state untouched.
// Missing collections become empty ones and logs are re-sorted by timestamp,
// so foreign backups that do not maintain recency order are repaired on entry.
func (t *Tracker) ImportJSON(data []byte) error {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse import payload: %w", err)
	}
	snap.Normalize()
	sortLogsRecentFirst(snap.Logs)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = snap
	t.logger.Info("imported snapshot", "instance_id", t.instanceID,
		"members", len(snap.Members), "chores", len(snap.Chores), "logs", len(snap.Logs))
	return t.save()
}

// save persists the current snapshot. Callers must hold the mutex.
func (t *Tracker) save() error {
	if err := t.store.Save(t.instanceID, t.snap); err != nil {
		return fmt.Errorf("persist instance %q: %w", t.instanceID, err)
	}
	return nil
}

func sortLogsRecentFirst(logs []model.ChoreLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.Millis() > logs[j].Timestamp.Millis()
	})
}
