package seats

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotEditing   = errors.New("no seat is being edited")
	ErrUnknownField = errors.New("unknown form field")
)

// Form is the draft of a seat's editable fields while an edit session
// is open. Status is deliberately absent: status changes bypass the
// form entirely.
type Form struct {
	Name            string `json:"name"`
	Affiliation     string `json:"affiliation"`
	EntryDate       string `json:"entry_date"`
	ExitDate        string `json:"exit_date"`
	Contact         string `json:"contact"`
	GuardianContact string `json:"guardian_contact"`
}

// Editor is the single-slot edit session: either idle or editing one
// seat's draft. Field edits touch only the draft; nothing is persisted
// until Save, and Cancel discards the draft outright.
type Editor struct {
	store Store

	mu     sync.Mutex
	active bool
	seatID int
	form   Form
}

func NewEditor(store Store) *Editor {
	return &Editor{store: store}
}

// Select opens an edit session for the seat, initializing the draft
// from the current record. Selecting while a session is open replaces
// it; the previous draft is discarded unsaved.
func (e *Editor) Select(ctx context.Context, seatID int) (Form, error) {
	seat, err := e.store.Get(ctx, seatID)
	if err != nil {
		return Form{}, err
	}

	form := Form{
		Name:            seat.Name,
		Affiliation:     seat.Affiliation,
		EntryDate:       seat.EntryDate,
		ExitDate:        seat.ExitDate,
		Contact:         seat.Contact,
		GuardianContact: seat.GuardianContact,
	}

	e.mu.Lock()
	e.active = true
	e.seatID = seatID
	e.form = form
	e.mu.Unlock()

	return form, nil
}

// EditField updates one draft field by its wire name.
func (e *Editor) EditField(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return ErrNotEditing
	}

	switch field {
	case "name":
		e.form.Name = value
	case "affiliation":
		e.form.Affiliation = value
	case "entry_date":
		e.form.EntryDate = value
	case "exit_date":
		e.form.ExitDate = value
	case "contact":
		e.form.Contact = value
	case "guardian_contact":
		e.form.GuardianContact = value
	default:
		return ErrUnknownField
	}
	return nil
}

// Save merges the entire draft (every editable field, changed or not)
// into the seat record and closes the session. If the write fails
// the session stays open with the draft intact so the form can be
// re-shown with the error.
func (e *Editor) Save(ctx context.Context) (Seat, error) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return Seat{}, ErrNotEditing
	}
	seatID := e.seatID
	form := e.form
	e.mu.Unlock()

	fields := Fields{
		Name:            &form.Name,
		Affiliation:     &form.Affiliation,
		EntryDate:       &form.EntryDate,
		ExitDate:        &form.ExitDate,
		Contact:         &form.Contact,
		GuardianContact: &form.GuardianContact,
	}

	seat, err := e.store.Upsert(ctx, seatID, fields)
	if err != nil {
		return Seat{}, err
	}

	e.mu.Lock()
	// Only clear if the slot still belongs to this save.
	if e.active && e.seatID == seatID {
		e.active = false
		e.form = Form{}
	}
	e.mu.Unlock()

	return seat, nil
}

// Cancel discards the draft without persisting. It reports whether a
// session was open.
func (e *Editor) Cancel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	wasActive := e.active
	e.active = false
	e.form = Form{}
	return wasActive
}

// Current returns the open session, if any.
func (e *Editor) Current() (int, Form, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seatID, e.form, e.active
}
