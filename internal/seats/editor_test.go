package seats

import (
	"context"
	"errors"
	"testing"
)

func newEditorUnderTest(t *testing.T, repo *fakeRepository) (*Editor, Store) {
	t.Helper()
	store := newStartedStore(t, repo)
	return NewEditor(store), store
}

func TestSelectInitializesDraftFromRecord(t *testing.T) {
	repo := newFakeRepository()
	repo.records[15] = Seat{ID: 15, Name: "한서준", ExitDate: "2026-05-01", Status: StatusIn}
	editor, _ := newEditorUnderTest(t, repo)

	form, err := editor.Select(context.Background(), 15)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if form.Name != "한서준" || form.ExitDate != "2026-05-01" {
		t.Errorf("draft = %+v", form)
	}

	seatID, _, active := editor.Current()
	if !active || seatID != 15 {
		t.Errorf("Current = (%d, active=%v)", seatID, active)
	}
}

func TestSelectUnknownSeat(t *testing.T) {
	editor, _ := newEditorUnderTest(t, newFakeRepository())

	if _, err := editor.Select(context.Background(), 99); !errors.Is(err, ErrSeatNotFound) {
		t.Errorf("error = %v, want ErrSeatNotFound", err)
	}
	if _, _, active := editor.Current(); active {
		t.Error("failed select must not open a session")
	}
}

func TestEditFieldUpdatesOnlyTheDraft(t *testing.T) {
	repo := newFakeRepository()
	editor, store := newEditorUnderTest(t, repo)

	if _, err := editor.Select(context.Background(), 30); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := editor.EditField("name", "오지후"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if err := editor.EditField("exit_date", "2026-06-15"); err != nil {
		t.Fatalf("EditField: %v", err)
	}

	_, form, _ := editor.Current()
	if form.Name != "오지후" || form.ExitDate != "2026-06-15" {
		t.Errorf("draft = %+v", form)
	}

	// Nothing persisted until save.
	if _, ok := repo.saved(30); ok {
		t.Error("field edit must not persist")
	}
	seat, _ := store.Get(context.Background(), 30)
	if seat != DefaultSeat(30) {
		t.Errorf("store changed before save: %+v", seat)
	}
}

func TestEditFieldErrors(t *testing.T) {
	editor, _ := newEditorUnderTest(t, newFakeRepository())

	if err := editor.EditField("name", "x"); !errors.Is(err, ErrNotEditing) {
		t.Errorf("idle edit error = %v, want ErrNotEditing", err)
	}

	if _, err := editor.Select(context.Background(), 2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := editor.EditField("status", StatusIn); !errors.Is(err, ErrUnknownField) {
		t.Errorf("status must not be editable through the form, got %v", err)
	}
	if err := editor.EditField("shoe_size", "270"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("error = %v, want ErrUnknownField", err)
	}
}

func TestSaveMergesWholeDraftAndClosesSession(t *testing.T) {
	repo := newFakeRepository()
	repo.records[8] = Seat{ID: 8, Name: "남는값", Contact: "010-9999-0000", Status: StatusOut}
	editor, store := newEditorUnderTest(t, repo)

	if _, err := editor.Select(context.Background(), 8); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := editor.EditField("name", "문가은"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if err := editor.EditField("contact", ""); err != nil {
		t.Fatalf("EditField: %v", err)
	}

	seat, err := editor.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Every editable field comes from the draft, including the
	// cleared contact; status is untouched.
	if seat.Name != "문가은" || seat.Contact != "" || seat.Status != StatusOut {
		t.Errorf("saved seat = %+v", seat)
	}

	stored, _ := store.Get(context.Background(), 8)
	if stored != seat {
		t.Errorf("store has %+v, save returned %+v", stored, seat)
	}
	if _, _, active := editor.Current(); active {
		t.Error("session should be closed after save")
	}
}

func TestSaveFailureKeepsSessionOpen(t *testing.T) {
	repo := newFakeRepository()
	editor, _ := newEditorUnderTest(t, repo)

	if _, err := editor.Select(context.Background(), 22); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := editor.EditField("name", "재시도"); err != nil {
		t.Fatalf("EditField: %v", err)
	}

	repo.failSave = errors.New("backend unavailable")
	if _, err := editor.Save(context.Background()); err == nil {
		t.Fatal("expected save failure")
	}

	seatID, form, active := editor.Current()
	if !active || seatID != 22 || form.Name != "재시도" {
		t.Errorf("draft lost after failed save: (%d, %+v, active=%v)", seatID, form, active)
	}

	// Backend recovers, the retried save goes through.
	repo.failSave = nil
	if _, err := editor.Save(context.Background()); err != nil {
		t.Fatalf("retried Save: %v", err)
	}
	if _, _, active := editor.Current(); active {
		t.Error("session should close after the successful retry")
	}
}

func TestSaveWithoutSession(t *testing.T) {
	editor, _ := newEditorUnderTest(t, newFakeRepository())
	if _, err := editor.Save(context.Background()); !errors.Is(err, ErrNotEditing) {
		t.Errorf("error = %v, want ErrNotEditing", err)
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	repo := newFakeRepository()
	editor, store := newEditorUnderTest(t, repo)

	if _, err := editor.Select(context.Background(), 40); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := editor.EditField("name", "버려질값"); err != nil {
		t.Fatalf("EditField: %v", err)
	}

	if !editor.Cancel() {
		t.Error("Cancel should report an open session")
	}
	if editor.Cancel() {
		t.Error("second Cancel should report idle")
	}

	seat, _ := store.Get(context.Background(), 40)
	if seat != DefaultSeat(40) {
		t.Errorf("cancel persisted something: %+v", seat)
	}
}

func TestStatusChangeIsIndependentOfEditSession(t *testing.T) {
	repo := newFakeRepository()
	editor, store := newEditorUnderTest(t, repo)

	if _, err := editor.Select(context.Background(), 12); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := editor.EditField("name", "편집중"); err != nil {
		t.Fatalf("EditField: %v", err)
	}

	// Toggling the status mid-edit persists immediately and leaves
	// the draft alone.
	if _, err := store.SetStatus(context.Background(), 12, StatusIn); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}

	seatID, form, active := editor.Current()
	if !active || seatID != 12 || form.Name != "편집중" {
		t.Errorf("draft disturbed by status change: (%d, %+v)", seatID, form)
	}

	seat, _ := store.Get(context.Background(), 12)
	if seat.Status != StatusIn {
		t.Errorf("status = %q, want in", seat.Status)
	}

	// Saving afterwards keeps the new status.
	saved, err := editor.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Status != StatusIn || saved.Name != "편집중" {
		t.Errorf("saved seat = %+v", saved)
	}
}
