package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/threepeak/choretrack/internal/model"
)

// DefaultInstanceID is used when no instance identifier was configured.
const DefaultInstanceID = "default-family-id"

// SnapshotStore persists whole tracker snapshots keyed by instance id, one
// JSON document per instance. Writes are last-write-wins upserts.
type SnapshotStore struct {
	db *sql.DB
}

func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Load returns the snapshot for the instance, or nil when none was saved yet.
func (s *SnapshotStore) Load(instanceID string) (*model.Snapshot, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE instance_id = ?`, normalizeID(instanceID)).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

// Save upserts the snapshot for the instance.
func (s *SnapshotStore) Save(instanceID string, snap model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (instance_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(instance_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		normalizeID(instanceID), string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Delete removes the snapshot for the instance. Deleting an unknown instance
// is not an error.
func (s *SnapshotStore) Delete(instanceID string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE instance_id = ?`, normalizeID(instanceID))
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// ListInstances returns the known instance ids, oldest first.
func (s *SnapshotStore) ListInstances() ([]string, error) {
	rows, err := s.db.Query(`SELECT instance_id FROM snapshots ORDER BY updated_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan instance id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func normalizeID(id string) string {
	if id == "" {
		return DefaultInstanceID
	}
	return id
}
