package seats

import (
	"context"
	"errors"
)

// Sentinel errors shared by the store and the HTTP layer.
var (
	ErrSeatNotFound = errors.New("seat not found")
	ErrBadStatus    = errors.New("status must be empty, \"in\" or \"out\"")
)

// Repository is the persistence contract every backend implements.
//
// Load returns every stored record; seats that were never written are
// simply absent. Save replaces the whole document for one seat
// (last-writer-wins, no field-level merge; the store read-merges
// before calling Save). Snapshots returns a channel on which the
// backend pushes full-collection snapshots whenever anything changes;
// backends that cannot push return nil and the store stays with
// whatever Save told it. Close releases the subscription and the
// underlying connection state owned by the repository.
type Repository interface {
	Load(ctx context.Context) ([]Seat, error)
	Save(ctx context.Context, seat Seat) error
	Snapshots() <-chan []Seat
	Close(ctx context.Context) error
}
