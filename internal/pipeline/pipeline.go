package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
	"github.com/joseph-ayodele/tabula-extract/internal/repository"
	"github.com/joseph-ayodele/tabula-extract/internal/tabula"
)

const finishTimeout = 5 * time.Second

// TableExtractor is the PDF -> table stage; *tabula.Extractor implements it.
type TableExtractor interface {
	Extract(ctx context.Context, req tabula.Request) (*tabula.Table, error)
}

type Pipeline struct {
	JobsRepo  repository.ExtractJobRepository // nil disables job tracking
	Extractor TableExtractor
	Log       *slog.Logger
}

func NewPipeline(jobs repository.ExtractJobRepository, tx TableExtractor, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{JobsRepo: jobs, Extractor: tx, Log: log}
}

// Run records an extract_job around one extraction. Without a job
// repository it only extracts and returns uuid.Nil.
func (p *Pipeline) Run(ctx context.Context, req tabula.Request) (uuid.UUID, *tabula.Table, error) {
	req = req.Normalize()
	if p.JobsRepo == nil {
		t, err := p.Extractor.Extract(ctx, req)
		return uuid.Nil, t, err
	}

	// Start job in RUNNING
	job, err := p.JobsRepo.Start(ctx, req.FilePath, req.Pages, req.ModeString())
	if err != nil {
		return uuid.Nil, nil, err
	}
	ctx = common.WithJobID(ctx, job.ID.String())

	t, err := p.Extractor.Extract(ctx, req)

	// The job row is finalized even when the caller has gone away.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finishTimeout)
	defer cancel()

	if err != nil {
		if ferr := p.JobsRepo.FinishFailure(finishCtx, job.ID, err.Error()); ferr != nil {
			p.Log.Warn("could not record job failure",
				"request_id", common.RequestIDFromContext(ctx),
				"job_id", job.ID,
				"error", ferr,
			)
		}
		return job.ID, nil, err
	}

	if err := p.JobsRepo.FinishSuccess(finishCtx, job.ID, len(t.Pages), t.NumRows(), t.NumCols()); err != nil {
		return job.ID, t, err
	}
	return job.ID, t, nil
}
