package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"impostor-server/internal/config"
	"impostor-server/internal/database"
	"impostor-server/internal/random"
	"impostor-server/internal/room"
	"impostor-server/internal/words"
)

const (
	eventBufferSize   = 256
	archiveQueueSize  = 128
	defaultHistoryLen = 20
	maxHistoryLen     = 100

	// archiveDrainTimeout bounds the archive flush on shutdown, separately
	// from the caller's budget for notifying clients.
	archiveDrainTimeout = 5 * time.Second
)

type Server struct {
	cfg            *config.Config
	originPatterns []string

	db      database.Service
	archive *Archive

	rooms       *room.Manager
	engine      *Engine
	coordinator *Coordinator
	scheduler   *timerScheduler
	connections *ConnectionManager
	limiter     *RateLimiter

	cancel context.CancelFunc
}

type options struct {
	rng *rand.Rand
	db  database.Service
}

type Option func(*options)

// WithRand fixes the random source, for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithDatabase uses db as the results archive instead of opening
// cfg.DatabaseURL.
func WithDatabase(db database.Service) Option {
	return func(o *options) { o.db = db }
}

// NewServer wires the coordinator, transport and optional archive, and
// starts the coordinator loop.
func NewServer(cfg *config.Config, opts ...Option) (*Server, *http.Server, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = random.NewTimeSeeded()
	}
	if err := words.Default.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid word table: %w", err)
	}

	s := &Server{
		cfg:            cfg,
		originPatterns: originPatterns(cfg.ClientOrigins),
		db:             o.db,
		scheduler:      newTimerScheduler(),
		connections:    NewConnectionManager(),
		limiter:        NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		rooms:          room.NewManager(room.NewMemoryStore(), o.rng),
	}

	if s.db == nil && cfg.ArchiveEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := database.New(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open results archive: %w", err)
		}
		s.db = db
		log.Info().Msg("Results archive connected, migrations applied")
	}

	var recorder ResultRecorder
	if s.db != nil {
		s.archive = NewArchive(s.db, archiveQueueSize)
		s.archive.Start()
		recorder = s.archive
	}

	s.coordinator = NewCoordinator(s.connections, eventBufferSize)
	s.engine = NewEngine(EngineConfig{
		Rooms:     s.rooms,
		Words:     words.Default,
		Rand:      o.rng,
		Scheduler: s.scheduler,
		Countdown: cfg.Countdown,
		Recorder:  recorder,
		Post:      s.coordinator.Post,
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.coordinator.Run(ctx, s.engine)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, httpServer, nil
}

// Shutdown tells every room the server is going away, flushes the sockets,
// stops the coordinator and drains the archive.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.coordinator.Post(ShutdownRequested{}) {
		// FIFO: once this returns the shutdown notices are queued.
		if err := s.coordinator.Do(ctx, func() {}); err != nil {
			errs = append(errs, fmt.Errorf("failed to dissolve rooms: %w", err))
		}
	}
	s.scheduler.StopAll()
	s.connections.CloseAll(ctx)

	s.cancel()
	select {
	case <-s.coordinator.Done():
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}

	if s.archive != nil {
		drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveDrainTimeout)
		if err := s.archive.Close(drainCtx); err != nil {
			errs = append(errs, fmt.Errorf("failed to drain archive: %w", err))
		}
		cancel()
	}
	if s.db != nil {
		s.db.Close()
	}

	log.Info().Msg("Server state shut down")
	return errors.Join(errs...)
}
