package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"impostor-server/internal/database"
)

// ResultRecorder accepts finished sessions. Record must not block.
type ResultRecorder interface {
	Record(r database.SessionResult)
}

var ErrArchiveClosed = errors.New("archive closed")

// Archive writes finished sessions to the database from its own goroutine so
// the coordinator never waits on I/O.
type Archive struct {
	db           database.Service
	queue        chan database.SessionResult
	writeTimeout time.Duration

	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

func NewArchive(db database.Service, queueSize int) *Archive {
	return &Archive{
		db:           db,
		queue:        make(chan database.SessionResult, queueSize),
		writeTimeout: 5 * time.Second,
		closed:       make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start runs the writer until Close.
func (a *Archive) Start() {
	go a.run()
}

func (a *Archive) run() {
	defer close(a.done)
	for {
		select {
		case r := <-a.queue:
			a.write(r)
		case <-a.closed:
			// Drain whatever is already queued.
			for {
				select {
				case r := <-a.queue:
					a.write(r)
				default:
					return
				}
			}
		}
	}
}

func (a *Archive) write(r database.SessionResult) {
	ctx, cancel := context.WithTimeout(context.Background(), a.writeTimeout)
	defer cancel()

	id, err := a.db.InsertSessionResult(ctx, r)
	if err != nil {
		log.Warn().Err(err).Str("room", r.RoomCode).Msg("Failed to archive session result")
		return
	}
	log.Debug().Int64("id", id).Str("room", r.RoomCode).Msg("Session result archived")
}

// Record queues r. A full queue drops the result.
func (a *Archive) Record(r database.SessionResult) {
	select {
	case <-a.closed:
		return
	default:
	}

	select {
	case a.queue <- r:
	default:
		log.Warn().Str("room", r.RoomCode).Msg("Archive queue full, dropping session result")
	}
}

func (a *Archive) Recent(ctx context.Context, limit int) ([]database.SessionResult, error) {
	select {
	case <-a.closed:
		return nil, ErrArchiveClosed
	default:
	}
	return a.db.RecentSessionResults(ctx, limit)
}

func (a *Archive) Health(ctx context.Context) map[string]string {
	return a.db.Health(ctx)
}

// Close stops accepting results and waits for queued writes to finish.
func (a *Archive) Close(ctx context.Context) error {
	a.closeOnce.Do(func() { close(a.closed) })
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
