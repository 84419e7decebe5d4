package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// ImportTimeout is the maximum duration for an import operation.
var ImportTimeout = 10 * time.Minute

// Service provides read access to the reflections table and the CSV import.
//
// Each call borrows a connection from the pool for the duration of one
// query or one import transaction.
type Service struct {
	db  *sqlx.DB
	now func() time.Time

	importTimeout time.Duration
	progress      ProgressCallback
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used by GetToday.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithImportTimeout bounds each import run.
func WithImportTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.importTimeout = d
		}
	}
}

// WithProgress registers a callback invoked while rows are imported.
func WithProgress(fn ProgressCallback) Option {
	return func(s *Service) { s.progress = fn }
}

// NewService creates a new Service over an open database handle.
func NewService(db *sqlx.DB, opts ...Option) *Service {
	s := &Service{
		db:            db,
		now:           time.Now,
		importTimeout: ImportTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the service clock's current date in YYYY-MM-DD form.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// Ping checks that the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
