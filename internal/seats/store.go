package seats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"seatboard/internal/rooms"
	"seatboard/pkg/logger"
)

// Store owns the authoritative in-memory seat set and mediates every
// read and write against the persistence backend.
type Store interface {
	// Start performs the initial load and, when the backend pushes
	// snapshots, begins consuming them. Call once before serving.
	Start(ctx context.Context) error

	// GetAll returns one record per configured seat in layout order;
	// seats never written come back as defaults.
	GetAll(ctx context.Context) []Seat
	Get(ctx context.Context, seatID int) (Seat, error)

	// Upsert merges the given fields into the seat's record and
	// persists the result. The in-memory view is only updated after
	// the write succeeds; a failed write leaves prior state visible
	// and returns the error.
	Upsert(ctx context.Context, seatID int, fields Fields) (Seat, error)
	SetStatus(ctx context.Context, seatID int, status string) (Seat, error)

	// Grid derives the full display view for the given "today".
	Grid(ctx context.Context, today time.Time) []RoomView

	Close(ctx context.Context) error
}

type store struct {
	repo       Repository
	windowDays int

	mu      sync.RWMutex
	records map[int]Seat

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewStore wires a store to its backend. windowDays is the near-exit
// window used by Grid.
func NewStore(repo Repository, windowDays int) Store {
	return &store{
		repo:       repo,
		windowDays: windowDays,
		records:    make(map[int]Seat),
		stop:       make(chan struct{}),
	}
}

func (s *store) Start(ctx context.Context) error {
	seats, loadErr := s.repo.Load(ctx)
	if loadErr == nil {
		s.replace(seats)
	}

	// The feed is wired regardless of the initial load: a backend whose
	// subscription works can still recover the set through its next
	// snapshot even when the first load failed.
	if feed := s.repo.Snapshots(); feed != nil {
		s.wg.Add(1)
		go s.consume(feed)
	}

	if loadErr != nil {
		return fmt.Errorf("failed to load initial seat set: %w", loadErr)
	}
	return nil
}

// consume replaces the entire in-memory set on every backend
// notification. Last writer wins per seat; there is no merging of
// concurrent edits.
func (s *store) consume(feed <-chan []Seat) {
	defer s.wg.Done()
	for {
		select {
		case <-s.stop:
			return
		case seats, ok := <-feed:
			if !ok {
				return
			}
			s.replace(seats)
			logger.GetDefault().LogSnapshotApplied(len(seats))
		}
	}
}

func (s *store) replace(seats []Seat) {
	records := make(map[int]Seat, len(seats))
	for _, seat := range seats {
		records[seat.ID] = seat
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
}

func (s *store) GetAll(ctx context.Context) []Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Seat, 0, rooms.Count())
	for _, seatID := range rooms.SeatIDs() {
		seat, ok := s.records[seatID]
		if !ok {
			seat = DefaultSeat(seatID)
		}
		out = append(out, seat)
	}
	return out
}

func (s *store) Get(ctx context.Context, seatID int) (Seat, error) {
	if _, ok := rooms.RoomOf(seatID); !ok {
		return Seat{}, ErrSeatNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if seat, ok := s.records[seatID]; ok {
		return seat, nil
	}
	return DefaultSeat(seatID), nil
}

func (s *store) Upsert(ctx context.Context, seatID int, fields Fields) (Seat, error) {
	if _, ok := rooms.RoomOf(seatID); !ok {
		return Seat{}, ErrSeatNotFound
	}
	if fields.Status != nil && !ValidStatus(*fields.Status) {
		return Seat{}, ErrBadStatus
	}

	s.mu.RLock()
	current, ok := s.records[seatID]
	s.mu.RUnlock()
	if !ok {
		current = DefaultSeat(seatID)
	}

	merged := fields.Apply(current)
	merged.ID = seatID

	if err := s.repo.Save(ctx, merged); err != nil {
		return Seat{}, err
	}

	s.mu.Lock()
	s.records[seatID] = merged
	s.mu.Unlock()

	logger.GetDefault().LogSeatSaved(ctx, seatID, merged.Status)
	return merged, nil
}

func (s *store) SetStatus(ctx context.Context, seatID int, status string) (Seat, error) {
	return s.Upsert(ctx, seatID, Fields{Status: &status})
}

func (s *store) Grid(ctx context.Context, today time.Time) []RoomView {
	s.mu.RLock()
	records := make(map[int]Seat, len(s.records))
	for id, seat := range s.records {
		records[id] = seat
	}
	s.mu.RUnlock()

	return BuildGrid(records, today, s.windowDays)
}

func (s *store) Close(ctx context.Context) error {
	close(s.stop)
	err := s.repo.Close(ctx)
	s.wg.Wait()
	return err
}
