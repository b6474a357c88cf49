package seats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// fileRepository is the local deployment mode: the whole collection
// lives in one JSON blob that is read once at startup and rewritten
// after every mutation. There is no change feed; this variant is
// single-writer by construction.
type fileRepository struct {
	path string

	mu      sync.Mutex
	records map[int]Seat
}

// NewFileRepository loads the snapshot at path. A missing file is an
// empty collection, not an error.
func NewFileRepository(path string) (Repository, error) {
	r := &fileRepository{
		path:    path,
		records: make(map[int]Seat),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, fmt.Errorf("failed to read seat snapshot %s: %w", path, err)
	}

	var seats []Seat
	if err := json.Unmarshal(raw, &seats); err != nil {
		return nil, fmt.Errorf("corrupt seat snapshot %s: %w", path, err)
	}
	for _, seat := range seats {
		r.records[seat.ID] = seat
	}
	return r, nil
}

func (r *fileRepository) Load(ctx context.Context) ([]Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedLocked(), nil
}

func (r *fileRepository) Save(ctx context.Context, seat Seat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.records[seat.ID]
	r.records[seat.ID] = seat

	if err := r.writeLocked(); err != nil {
		// Keep memory and disk consistent: roll back the merge.
		if existed {
			r.records[seat.ID] = previous
		} else {
			delete(r.records, seat.ID)
		}
		return err
	}
	return nil
}

// writeLocked rewrites the full snapshot through a temp file so a
// crash mid-write never truncates the previous snapshot.
func (r *fileRepository) writeLocked() error {
	raw, err := json.MarshalIndent(r.sortedLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal seat snapshot: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write seat snapshot: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace seat snapshot: %w", err)
	}
	return nil
}

func (r *fileRepository) sortedLocked() []Seat {
	seats := make([]Seat, 0, len(r.records))
	for _, seat := range r.records {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i].ID < seats[j].ID })
	return seats
}

func (r *fileRepository) Snapshots() <-chan []Seat {
	return nil
}

func (r *fileRepository) Close(ctx context.Context) error {
	return nil
}
