package seats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seatboard/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoSeatsCollection = "seats"

// mongoRepository stores one document per seat, keyed by the seat id.
// Writes are whole-document replaces; a change stream on the collection
// drives snapshot pushes. Change streams need a replica set; on a
// standalone server the repository degrades to loads and saves only.
type mongoRepository struct {
	collection *mongo.Collection
	stream     *mongo.ChangeStream
	snapshots  chan []Seat
	done       chan struct{}
}

// NewMongoRepository opens a change stream on the seats collection of
// the given database.
func NewMongoRepository(db *mongo.Database) Repository {
	r := &mongoRepository{
		collection: db.Collection(mongoSeatsCollection),
		done:       make(chan struct{}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := r.collection.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		logger.GetDefault().Warn("mongo change stream unavailable, continuing without live updates",
			slog.String("collection", mongoSeatsCollection),
			slog.Any("error", err),
		)
		return r
	}

	r.stream = stream
	r.snapshots = make(chan []Seat, 1)
	go r.watch()
	return r
}

func (r *mongoRepository) Load(ctx context.Context) ([]Seat, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to load seats from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var seats []Seat
	if err := cursor.All(ctx, &seats); err != nil {
		return nil, fmt.Errorf("failed to decode seat documents: %w", err)
	}
	return seats, nil
}

func (r *mongoRepository) Save(ctx context.Context, seat Seat) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": seat.ID},
		seat,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save seat %d to mongo: %w", seat.ID, err)
	}
	return nil
}

func (r *mongoRepository) Snapshots() <-chan []Seat {
	return r.snapshots
}

func (r *mongoRepository) watch() {
	defer close(r.snapshots)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-r.done
		cancel()
	}()

	for r.stream.Next(ctx) {
		loadCtx, loadCancel := context.WithTimeout(context.Background(), 5*time.Second)
		seats, err := r.Load(loadCtx)
		loadCancel()
		if err != nil {
			logger.GetDefault().Warn("failed to reload seats after change event", slog.Any("error", err))
			continue
		}

		select {
		case r.snapshots <- seats:
		case <-r.done:
			return
		}
	}
}

func (r *mongoRepository) Close(ctx context.Context) error {
	close(r.done)
	if r.stream != nil {
		if err := r.stream.Close(ctx); err != nil {
			return fmt.Errorf("failed to close mongo change stream: %w", err)
		}
	}
	return nil
}
