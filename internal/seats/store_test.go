package seats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeRepository is an in-memory backend for store and editor tests.
// Saves can be made to fail, and snapshots can be injected through the
// feed channel.
type fakeRepository struct {
	mu       sync.Mutex
	records  map[int]Seat
	failLoad error
	failSave error
	feed     chan []Seat
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[int]Seat)}
}

func (f *fakeRepository) Load(ctx context.Context) ([]Seat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLoad != nil {
		return nil, f.failLoad
	}
	seats := make([]Seat, 0, len(f.records))
	for _, seat := range f.records {
		seats = append(seats, seat)
	}
	return seats, nil
}

func (f *fakeRepository) Save(ctx context.Context, seat Seat) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave != nil {
		return f.failSave
	}
	f.records[seat.ID] = seat
	return nil
}

func (f *fakeRepository) Snapshots() <-chan []Seat {
	return f.feed
}

func (f *fakeRepository) Close(ctx context.Context) error {
	if f.feed != nil {
		close(f.feed)
	}
	return nil
}

func (f *fakeRepository) saved(id int) (Seat, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seat, ok := f.records[id]
	return seat, ok
}

func newStartedStore(t *testing.T, repo Repository) Store {
	t.Helper()
	store := NewStore(repo, 2)
	if err := store.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = store.Close(ctx)
	})
	return store
}

func TestGetAllReturnsDefaultsForUnwrittenSeats(t *testing.T) {
	store := newStartedStore(t, newFakeRepository())

	all := store.GetAll(context.Background())
	if len(all) != 80 {
		t.Fatalf("GetAll returned %d seats, want 80", len(all))
	}
	for _, seat := range all {
		if seat != DefaultSeat(seat.ID) {
			t.Errorf("seat %d not default: %+v", seat.ID, seat)
		}
	}
	if all[0].ID != 1 || all[79].ID != 80 {
		t.Errorf("layout order broken: first %d last %d", all[0].ID, all[79].ID)
	}
}

func TestUpsertStatusPreservesOtherFields(t *testing.T) {
	repo := newFakeRepository()
	repo.records[7] = Seat{ID: 7, Name: "박은서", Affiliation: "수학과", ExitDate: "2026-04-01"}
	store := newStartedStore(t, repo)

	seat, err := store.SetStatus(context.Background(), 7, StatusIn)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	if seat.Status != StatusIn {
		t.Errorf("status = %q, want in", seat.Status)
	}
	if seat.Name != "박은서" || seat.Affiliation != "수학과" || seat.ExitDate != "2026-04-01" {
		t.Errorf("other fields changed: %+v", seat)
	}

	persisted, ok := repo.saved(7)
	if !ok || persisted != seat {
		t.Errorf("persisted record %+v differs from returned %+v", persisted, seat)
	}
}

func TestUpsertCreatesDefaultFirst(t *testing.T) {
	store := newStartedStore(t, newFakeRepository())

	seat, err := store.SetStatus(context.Background(), 12, StatusIn)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	want := DefaultSeat(12)
	want.Status = StatusIn
	if seat != want {
		t.Errorf("got %+v, want %+v", seat, want)
	}
}

func TestUpsertOverwritesAllEditableFields(t *testing.T) {
	repo := newFakeRepository()
	repo.records[3] = Seat{ID: 3, Name: "이전", Contact: "010-1111-2222", Status: StatusIn}
	store := newStartedStore(t, repo)

	empty := ""
	name := "최수민"
	seat, err := store.Upsert(context.Background(), 3, Fields{
		Name:            &name,
		Affiliation:     &empty,
		EntryDate:       &empty,
		ExitDate:        &empty,
		Contact:         &empty,
		GuardianContact: &empty,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if seat.Name != "최수민" || seat.Contact != "" {
		t.Errorf("fields not overwritten: %+v", seat)
	}
	if seat.Status != StatusIn {
		t.Errorf("status should be untouched by a form save, got %q", seat.Status)
	}
}

func TestUpsertRejectsUnknownSeatAndBadStatus(t *testing.T) {
	store := newStartedStore(t, newFakeRepository())

	for _, id := range []int{0, 81, -1} {
		if _, err := store.Get(context.Background(), id); !errors.Is(err, ErrSeatNotFound) {
			t.Errorf("Get(%d) error = %v, want ErrSeatNotFound", id, err)
		}
		if _, err := store.SetStatus(context.Background(), id, StatusIn); !errors.Is(err, ErrSeatNotFound) {
			t.Errorf("SetStatus(%d) error = %v, want ErrSeatNotFound", id, err)
		}
	}

	if _, err := store.SetStatus(context.Background(), 5, "sleeping"); !errors.Is(err, ErrBadStatus) {
		t.Errorf("bad status error = %v, want ErrBadStatus", err)
	}
}

func TestFailedSaveLeavesPriorStateVisible(t *testing.T) {
	repo := newFakeRepository()
	repo.records[9] = Seat{ID: 9, Name: "정하윤", Status: StatusOut}
	store := newStartedStore(t, repo)

	repo.failSave = errors.New("backend unavailable")
	if _, err := store.SetStatus(context.Background(), 9, StatusIn); err == nil {
		t.Fatal("expected save failure")
	}

	seat, err := store.Get(context.Background(), 9)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if seat.Status != StatusOut || seat.Name != "정하윤" {
		t.Errorf("prior state not preserved: %+v", seat)
	}
}

func TestSnapshotReplacesWholeSet(t *testing.T) {
	repo := newFakeRepository()
	repo.records[4] = Seat{ID: 4, Name: "before"}
	repo.feed = make(chan []Seat, 1)
	store := newStartedStore(t, repo)

	// The snapshot has seat 20 but not seat 4: the whole in-memory
	// set is replaced, not merged.
	repo.feed <- []Seat{{ID: 20, Name: "after", Status: StatusIn}}

	deadline := time.After(2 * time.Second)
	for {
		seat, err := store.Get(context.Background(), 20)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if seat.Name == "after" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("snapshot was never applied")
		case <-time.After(10 * time.Millisecond):
		}
	}

	seat4, err := store.Get(context.Background(), 4)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if seat4 != DefaultSeat(4) {
		t.Errorf("seat 4 should have reverted to default, got %+v", seat4)
	}
}

func TestStartConsumesFeedAfterFailedInitialLoad(t *testing.T) {
	repo := newFakeRepository()
	repo.failLoad = errors.New("backend unavailable")
	repo.feed = make(chan []Seat, 1)

	store := NewStore(repo, 2)
	if err := store.Start(context.Background()); err == nil {
		t.Fatal("expected initial load failure")
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = store.Close(ctx)
	})

	// The backend recovers and pushes a snapshot; the degraded store
	// must pick it up even though the first load failed.
	repo.feed <- []Seat{{ID: 33, Name: "복구", Status: StatusIn}}

	deadline := time.After(2 * time.Second)
	for {
		seat, err := store.Get(context.Background(), 33)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if seat.Name == "복구" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("snapshot was never applied after a failed initial load")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestGridReflectsStatusChange(t *testing.T) {
	store := newStartedStore(t, newFakeRepository())
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	grid := store.Grid(context.Background(), today)
	seat12 := grid[1].Seats[0]
	if seat12.Color != ColorNeutral || seat12.DisplayName != "12번" || seat12.ExitDate != "" {
		t.Fatalf("default seat 12 view = %+v", seat12)
	}
	if grid[1].Label != "2열람실" {
		t.Fatalf("room 2 label = %q", grid[1].Label)
	}

	if _, err := store.SetStatus(context.Background(), 12, StatusIn); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	grid = store.Grid(context.Background(), today)
	if got := grid[1].Seats[0].Color; got != ColorWarning {
		t.Errorf("seat 12 color after check-in = %q, want warning", got)
	}
	if grid[1].Label != "2열람실" {
		t.Errorf("room header changed: %q", grid[1].Label)
	}
}

func TestGridNearExitWindow(t *testing.T) {
	store := newStartedStore(t, newFakeRepository())
	today := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	exit := "2026-03-12" // today + 2 days
	if _, err := store.Upsert(context.Background(), 1, Fields{ExitDate: &exit}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !store.Grid(context.Background(), today)[0].Seats[0].NearExit {
		t.Error("exit in two days should be flagged")
	}

	exit = "2026-03-13" // today + 3 days
	if _, err := store.Upsert(context.Background(), 1, Fields{ExitDate: &exit}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if store.Grid(context.Background(), today)[0].Seats[0].NearExit {
		t.Error("exit in three days should not be flagged")
	}
}
