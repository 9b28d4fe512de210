package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/tabula-extract/constants"
	"github.com/joseph-ayodele/tabula-extract/internal/common"
	"github.com/joseph-ayodele/tabula-extract/internal/entity"
)

const extractJobTable = "extract_job"

type ExtractJobRepository interface {
	Migrate(ctx context.Context) error
	Start(ctx context.Context, filePath, pages, mode string) (*entity.ExtractJob, error)
	FinishSuccess(ctx context.Context, jobID uuid.UUID, pages, rows, cols int) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	Get(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error)
}

type extractJobRepo struct {
	db  *DB
	log *slog.Logger
	now func() time.Time
}

func NewExtractJobRepository(db *DB, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{db: db, log: log, now: time.Now}
}

func (r *extractJobRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect)
}

// extractJobDDL is valid for both SQLite and Postgres; timestamps are TEXT.
const extractJobDDL = `CREATE TABLE IF NOT EXISTS extract_job (
	id            TEXT PRIMARY KEY,
	file_path     TEXT NOT NULL,
	pages         TEXT NOT NULL,
	mode          TEXT NOT NULL,
	status        TEXT NOT NULL,
	started_at    TEXT NOT NULL,
	finished_at   TEXT,
	error_message TEXT,
	page_count    INTEGER NOT NULL DEFAULT 0,
	row_count     INTEGER NOT NULL DEFAULT 0,
	col_count     INTEGER NOT NULL DEFAULT 0
)`

// Migrate creates the extract_job table when it does not exist.
func (r *extractJobRepo) Migrate(ctx context.Context) error {
	if _, err := r.db.SQL.ExecContext(ctx, extractJobDDL); err != nil {
		r.log.Error("extract_job migrate failed", "dialect", r.db.Dialect, "err", err)
		return fmt.Errorf("%w: migrate %s: %w", common.ErrDatabase, extractJobTable, err)
	}
	return nil
}

func (r *extractJobRepo) Start(ctx context.Context, filePath, pages, mode string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:        uuid.New(),
		FilePath:  filePath,
		Pages:     pages,
		Mode:      mode,
		Status:    string(constants.JobStatusRunning),
		StartedAt: r.now().UTC(),
	}
	query, args := r.builder().Insert(extractJobTable).
		Columns("id", "file_path", "pages", "mode", "status", "started_at").
		Values(job.ID.String(), job.FilePath, job.Pages, job.Mode, job.Status, formatTime(job.StartedAt)).
		Query()
	if _, err := r.db.SQL.ExecContext(ctx, query, args...); err != nil {
		r.log.Error("extract_job start failed", "file_path", filePath, "err", err)
		return nil, fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "file_path", filePath, "mode", mode)
	return job, nil
}

func (r *extractJobRepo) FinishSuccess(ctx context.Context, jobID uuid.UUID, pages, rows, cols int) error {
	query, args := r.builder().Update(extractJobTable).
		Set("status", string(constants.JobStatusOK)).
		Set("finished_at", formatTime(r.now().UTC())).
		Set("page_count", pages).
		Set("row_count", rows).
		Set("col_count", cols).
		Where(entsql.EQ("id", jobID.String())).
		Query()
	if err := r.execOne(ctx, query, args); err != nil {
		r.log.Error("extract_job finish(OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job finished (OK)", "job_id", jobID, "rows", rows, "cols", cols)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	query, args := r.builder().Update(extractJobTable).
		Set("status", string(constants.JobStatusFailed)).
		Set("finished_at", formatTime(r.now().UTC())).
		Set("error_message", message).
		Where(entsql.EQ("id", jobID.String())).
		Query()
	if err := r.execOne(ctx, query, args); err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) Get(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error) {
	b := r.builder()
	query, args := b.Select(
		"id", "file_path", "pages", "mode", "status", "started_at",
		"finished_at", "error_message", "page_count", "row_count", "col_count",
	).
		From(b.Table(extractJobTable)).
		Where(entsql.EQ("id", jobID.String())).
		Query()

	var (
		id, startedAt          string
		finishedAt, errMessage sql.NullString
		job                    entity.ExtractJob
	)
	err := r.db.SQL.QueryRowContext(ctx, query, args...).Scan(
		&id, &job.FilePath, &job.Pages, &job.Mode, &job.Status, &startedAt,
		&finishedAt, &errMessage, &job.PageCount, &job.RowCount, &job.ColCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: extract_job %s", common.ErrNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}

	if job.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: bad job id %q: %w", common.ErrDatabase, id, err)
	}
	if job.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, fmt.Errorf("%w: bad started_at: %w", common.ErrDatabase, err)
	}
	if finishedAt.Valid {
		t, err := parseTime(finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("%w: bad finished_at: %w", common.ErrDatabase, err)
		}
		job.FinishedAt = &t
	}
	if errMessage.Valid {
		job.ErrorMessage = &errMessage.String
	}
	return &job, nil
}

func (r *extractJobRepo) execOne(ctx context.Context, query string, args []any) error {
	res, err := r.db.SQL.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrDatabase, err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Timestamps are stored as RFC 3339 text so both dialects round-trip them.
func formatTime(t time.Time) string { return t.Format(time.RFC3339Nano) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }
