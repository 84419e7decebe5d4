package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	db "github.com/JonMunkholm/reflections/internal/database"
	"github.com/JonMunkholm/reflections/internal/logging"
	"github.com/google/uuid"
)

// ContextCheckInterval is how often (in rows) the import checks for cancellation.
var ContextCheckInterval = 100

// ProgressInterval is how often (in rows) progress callbacks fire.
var ProgressInterval = 100

// Import replaces one language partition with the matching rows of a CSV file.
//
// The partition delete, every upsert and the final commit share a single
// transaction. Each row runs inside its own savepoint so a failing row is
// rolled back alone and reported in the result. With opts.Strict set, any
// failed row discards the whole import and ErrImportAborted is returned
// together with the result describing the failures.
//
// A missing CSV file returns ErrCSVNotFound before the database is touched.
// Callers that open the database themselves should run CheckImportSource
// first.
func (s *Service) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	startTime := time.Now()

	info, err := CheckImportSource(opts)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(opts.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	result := &ImportResult{
		ImportID: uuid.New().String(),
		Language: opts.Language,
		FileName: filepath.Base(opts.CSVPath),
		Rows:     []RowResult{},
	}
	logger := logging.WithFields(ctx,
		"import_id", result.ImportID,
		"language", opts.Language,
		"file", result.FileName,
	)
	logger.Info("import started", "strict", opts.Strict, "bytes", info.Size())

	progress := ImportProgress{ImportID: result.ImportID, Phase: PhaseStarting, BytesTotal: info.Size()}
	s.notify(progress)

	if err := db.New(s.db).CreateSchema(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	progress.Phase = PhaseClearing
	s.notify(progress)

	txq := db.New(tx)
	deleted, err := txq.DeleteLanguage(ctx, string(opts.Language))
	if err != nil {
		return nil, fmt.Errorf("clear %s reflections: %w", opts.Language, err)
	}
	logger.Debug("cleared partition", "deleted", deleted)

	stream := WrapForStreaming(file, info.Size())
	if err := s.importRows(ctx, txq, stream, opts.Language, result, &progress, logger); err != nil {
		progress.Phase = PhaseFailed
		s.notify(progress)
		return nil, err
	}

	if opts.Strict && result.Failed > 0 {
		progress.Phase = PhaseFailed
		s.notify(progress)
		result.Duration = time.Since(startTime)
		logger.Warn("strict import aborted", "failed", result.Failed, "matched", result.Matched)
		return result, fmt.Errorf("%w: %d of %d %s rows failed", ErrImportAborted, result.Failed, result.Matched, opts.Language)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	progress.Phase = PhaseVerifying
	s.notify(progress)

	q := db.New(s.db)
	stored, err := q.CountLanguage(ctx, string(opts.Language))
	if err != nil {
		return nil, fmt.Errorf("verify %s count: %w", opts.Language, err)
	}
	result.Stored = int(stored)

	if result.Breakdown, err = s.Breakdown(ctx); err != nil {
		return nil, err
	}
	result.Duration = time.Since(startTime)

	progress.Phase = PhaseComplete
	s.notify(progress)

	logger.Info("import completed",
		"total_rows", result.TotalRows,
		"inserted", result.Inserted,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"stored", result.Stored,
		"duration", result.Duration,
	)
	return result, nil
}

// CheckImportSource validates opts without touching the database: the
// language must be supported and the CSV must exist, be a regular file and
// fit within MaxFileSize.
func CheckImportSource(opts ImportOptions) (fs.FileInfo, error) {
	if err := checkLanguage(opts.Language); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.CSVPath)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrCSVNotFound, opts.CSVPath)
	}
	if err != nil {
		return nil, fmt.Errorf("stat csv: %w", err)
	}
	if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, opts.CSVPath, info.Size(), opts.MaxFileSize)
	}
	return info, nil
}

// importRows streams the CSV and upserts every row of the target language.
// Only errors that make the whole import unusable are returned; row
// problems are recorded in result.
func (s *Service) importRows(ctx context.Context, q *db.Queries, stream *StreamingReader, lang Language, result *ImportResult, progress *ImportProgress, logger *slog.Logger) error {
	cr := newCSVReader(stream)

	idx, headerLine, err := findHeader(cr)
	if err != nil {
		return err
	}
	logger.Debug("header found", "line", headerLine)

	progress.Phase = PhaseInserting
	s.notify(*progress)

	for i := 0; ; i++ {
		if i%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("import cancelled: %w", err)
			}
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		result.TotalRows++

		if isEmptyRow(record) || rowLanguage(record, idx) != string(lang) {
			result.Skipped++
			continue
		}
		result.Matched++

		reflection, err := parseRow(record, idx)
		if err != nil {
			result.fail(line, reflection.Date, err.Error(), record)
			logger.Warn("row rejected", "line", line, "reason", err, "row", record)
			continue
		}

		if err := upsertRow(ctx, q, reflection, result.Matched); err != nil {
			var fatal *fatalRowError
			if errors.As(err, &fatal) {
				return fatal.err
			}
			result.fail(line, reflection.Date, err.Error(), record)
			logger.Warn("row failed", "line", line, "reason", err, "row", record)
			continue
		}

		result.Inserted++
		result.Rows = append(result.Rows, RowResult{Line: line, Date: reflection.Date, Status: RowImported})

		if result.Matched%ProgressInterval == 0 {
			progress.CurrentRow = result.TotalRows
			progress.Inserted = result.Inserted
			progress.Failed = result.Failed
			progress.BytesRead = stream.Counter.BytesRead
			s.notify(*progress)
		}
	}

	progress.CurrentRow = result.TotalRows
	progress.Inserted = result.Inserted
	progress.Failed = result.Failed
	progress.BytesRead = stream.Counter.BytesRead
	return nil
}

// fatalRowError marks a savepoint failure, after which the transaction
// state is unknown and the import cannot continue.
type fatalRowError struct{ err error }

func (e *fatalRowError) Error() string { return e.err.Error() }

func upsertRow(ctx context.Context, q *db.Queries, r Reflection, seq int) error {
	sp := fmt.Sprintf("sp_%d", seq)
	if err := q.Savepoint(ctx, sp); err != nil {
		return &fatalRowError{fmt.Errorf("create savepoint: %w", err)}
	}

	err := q.UpsertReflection(ctx, db.UpsertReflectionParams{
		Date:     r.Date,
		Language: string(r.Language),
		Title:    r.Title,
		Quote:    r.Quote,
		Text:     r.Text,
		Content:  r.Reference,
	})
	if err != nil {
		if rbErr := q.RollbackToSavepoint(ctx, sp); rbErr != nil {
			return &fatalRowError{fmt.Errorf("rollback savepoint: %w", rbErr)}
		}
		_ = q.ReleaseSavepoint(ctx, sp)
		return fmt.Errorf("upsert: %w", err)
	}

	if err := q.ReleaseSavepoint(ctx, sp); err != nil {
		return &fatalRowError{fmt.Errorf("release savepoint: %w", err)}
	}
	return nil
}

func (r *ImportResult) fail(line int, date, reason string, data []string) {
	r.Failed++
	r.Rows = append(r.Rows, RowResult{
		Line:   line,
		Date:   date,
		Status: RowFailed,
		Reason: reason,
		Data:   data,
	})
}

func (s *Service) notify(p ImportProgress) {
	if s.progress != nil {
		s.progress(p)
	}
}
