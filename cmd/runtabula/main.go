package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
	"github.com/joseph-ayodele/tabula-extract/internal/export"
	"github.com/joseph-ayodele/tabula-extract/internal/tabula"
)

// runtabula <file.pdf> extracts every table of the document with the
// engine defaults and writes <file>.xlsx next to it.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runtabula <file.pdf>")
		os.Exit(2)
	}
	in := os.Args[1]
	v := common.NewValidator().
		Field("file", in, common.Required, common.PDFExtension)
	if err := v.Error(); err != nil {
		logger.Error("invalid input", "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	extractor, err := tabula.NewExtractor(ctx, tabula.Config{
		Interpreter:       cfg.Tabula.Interpreter,
		Encoding:          cfg.Tabula.Encoding,
		ArtifactPath:      cfg.Tabula.ArtifactPath,
		ArtifactDir:       cfg.Tabula.ArtifactDir,
		Timeout:           cfg.Tabula.Timeout,
		ReplicateFirstRow: cfg.Tabula.ReplicateFirstRow,
	}, logger)
	if err != nil {
		logger.Error("tabula init failed", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	t, err := extractor.Extract(ctx, tabula.Request{FilePath: in})
	if err != nil {
		logger.Error("table extraction failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	xlsx, err := export.XLSX(t, "")
	if err != nil {
		logger.Error("xlsx export failed", "error", err)
		os.Exit(1)
	}
	out := strings.TrimSuffix(in, filepath.Ext(in)) + ".xlsx"
	if err := os.WriteFile(out, xlsx, 0o644); err != nil {
		logger.Error("write xlsx", "path", out, "error", err)
		os.Exit(1)
	}

	logger.Info("table extraction OK",
		"out", out,
		"pages", len(t.Pages),
		"rows", t.NumRows(),
		"cols", t.NumCols(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
