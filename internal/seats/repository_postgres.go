package seats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seatboard/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postgresRepository keeps the records in a seats table. Postgres has
// no push channel here, so a polling ticker reloads the table on an
// interval and feeds the snapshot channel; other writers become
// visible within one refresh period.
type postgresRepository struct {
	db        *gorm.DB
	snapshots chan []Seat
	done      chan struct{}
}

// NewPostgresRepository migrates the seats table and starts the
// polling refresh. A non-positive refresh interval disables polling.
func NewPostgresRepository(db *gorm.DB, refreshInterval time.Duration) (Repository, error) {
	if err := db.AutoMigrate(&Seat{}); err != nil {
		return nil, fmt.Errorf("failed to migrate seats table: %w", err)
	}

	r := &postgresRepository{
		db:   db,
		done: make(chan struct{}),
	}

	if refreshInterval > 0 {
		r.snapshots = make(chan []Seat, 1)
		go r.poll(refreshInterval)
	} else {
		logger.GetDefault().Warn("postgres refresh disabled, continuing without live updates")
	}
	return r, nil
}

func (r *postgresRepository) Load(ctx context.Context) ([]Seat, error) {
	var seats []Seat
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&seats).Error; err != nil {
		return nil, fmt.Errorf("failed to load seats from postgres: %w", err)
	}
	return seats, nil
}

func (r *postgresRepository) Save(ctx context.Context, seat Seat) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&seat).Error
	if err != nil {
		return fmt.Errorf("failed to save seat %d to postgres: %w", seat.ID, err)
	}
	return nil
}

func (r *postgresRepository) Snapshots() <-chan []Seat {
	return r.snapshots
}

func (r *postgresRepository) poll(interval time.Duration) {
	defer close(r.snapshots)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			seats, err := r.Load(ctx)
			cancel()
			if err != nil {
				logger.GetDefault().Warn("failed to refresh seats from postgres", slog.Any("error", err))
				continue
			}

			select {
			case r.snapshots <- seats:
			case <-r.done:
				return
			}
		}
	}
}

func (r *postgresRepository) Close(ctx context.Context) error {
	close(r.done)
	return nil
}
