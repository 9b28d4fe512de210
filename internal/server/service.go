package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
	"github.com/joseph-ayodele/tabula-extract/internal/export"
	"github.com/joseph-ayodele/tabula-extract/internal/pipeline"
	"github.com/joseph-ayodele/tabula-extract/internal/tabula"
)

// extractRequest is the JSON form of an Extract/ExportXLSX request.
type extractRequest struct {
	FilePath string `json:"file_path"`
	Pages    string `json:"pages"`
	Guess    bool   `json:"guess"`
	Lattice  bool   `json:"lattice"`
	Stream   bool   `json:"stream"`
	Area     string `json:"area"`
	Columns  string `json:"columns"`
	Header   bool   `json:"header"`
	Sheet    string `json:"sheet"`
}

func (r extractRequest) toTabula() tabula.Request {
	return tabula.Request{
		FilePath: r.FilePath,
		Pages:    r.Pages,
		Guess:    r.Guess,
		Lattice:  r.Lattice,
		Stream:   r.Stream,
		Area:     r.Area,
		Columns:  r.Columns,
	}
}

type TableService struct {
	pipeline *pipeline.Pipeline
	schema   *jsonschema.Schema
	logger   *slog.Logger
}

func NewTableService(p *pipeline.Pipeline, logger *slog.Logger) (*TableService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileSchema(buildRequestJSONSchema())
	if err != nil {
		return nil, err
	}
	return &TableService{pipeline: p, schema: schema, logger: logger}, nil
}

func (s *TableService) Extract(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := s.parse(in)
	if err != nil {
		return nil, err
	}
	jobID, t, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := structpb.NewStruct(tableToMap(jobID, t))
	if err != nil {
		return nil, common.InternalErrorf("encode table: %v", err)
	}
	return out, nil
}

func (s *TableService) ExportXLSX(ctx context.Context, in *structpb.Struct) (*wrapperspb.BytesValue, error) {
	req, err := s.parse(in)
	if err != nil {
		return nil, err
	}
	_, t, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	xlsx, err := export.XLSX(t, req.Sheet)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "path", req.FilePath, "err", err)
		return nil, common.InternalError(err.Error())
	}
	return wrapperspb.Bytes(xlsx), nil
}

func (s *TableService) parse(in *structpb.Struct) (extractRequest, error) {
	var req extractRequest
	if in == nil {
		return req, common.InvalidArgumentError("request is required")
	}
	b, err := in.MarshalJSON()
	if err != nil {
		return req, common.InvalidArgumentErrorf("request: %v", err)
	}
	if err := validateJSON(s.schema, b); err != nil {
		return req, common.InvalidArgumentError(err.Error())
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return req, common.InvalidArgumentErrorf("request: %v", err)
	}
	return req, nil
}

func (s *TableService) run(ctx context.Context, req extractRequest) (uuid.UUID, *tabula.Table, error) {
	start := time.Now()
	requestID := uuid.NewString()
	ctx = common.WithRequestID(ctx, requestID)

	jobID, t, err := s.pipeline.Run(ctx, req.toTabula())
	if err != nil {
		s.logger.Warn("extract failed", "request_id", requestID, "job_id", jobID, "path", req.FilePath, "error", err)
		return jobID, nil, common.ToStatus(err)
	}
	if req.Header && t.NumRows() > 0 {
		if err := t.PromoteHeader(); err != nil {
			return jobID, nil, common.InternalErrorf("promote header: %v", err)
		}
	}
	s.logger.Info("extract ok",
		"request_id", requestID,
		"job_id", jobID,
		"rows", t.NumRows(),
		"cols", t.NumCols(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return jobID, t, nil
}

func tableToMap(jobID uuid.UUID, t *tabula.Table) map[string]any {
	columns := make([]any, 0, t.NumCols())
	for _, name := range t.ColumnNames() {
		columns = append(columns, name)
	}
	rows := make([]any, 0, t.NumRows())
	for _, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		rows = append(rows, cells)
	}
	pages := make([]any, 0, len(t.Pages))
	for _, p := range t.Pages {
		pages = append(pages, map[string]any{
			"page_number":       p.PageNumber,
			"extraction_method": p.Method,
			"first_row":         p.FirstRow,
			"row_count":         p.RowCount,
		})
	}
	return map[string]any{
		"job_id":  jobID.String(),
		"columns": columns,
		"rows":    rows,
		"pages":   pages,
	}
}
