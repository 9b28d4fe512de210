package tabula

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/tabula-extract/constants"
	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

type Config struct {
	Interpreter string // binary name or absolute path; if empty -> "java"
	Encoding    string // value of -Dfile.encoding, default "UTF8"

	// ArtifactPath points at an installed engine jar. When set, nothing is
	// provisioned and Payload/ArtifactDir are ignored.
	ArtifactPath string
	ArtifactDir  string // default <tmp>/tabula-go
	Payload      []byte // default EmbeddedPayload()

	Timeout           time.Duration // 0 = wait for the engine indefinitely
	ReplicateFirstRow bool
}

// ProcessError is an engine run that did not yield a table. ExitCode is -1
// when the process never started or was cancelled.
type ProcessError struct {
	Exe      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("tabula: %s exited with code %d", e.Exe, e.ExitCode)
	if e.ExitCode == -1 {
		msg = fmt.Sprintf("tabula: could not run %s", e.Exe)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += ": " + truncate(e.Stderr, 512)
	}
	return msg
}

func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{common.ErrProcess}
	}
	return []error{common.ErrProcess, e.Err}
}

// Extractor runs the engine synchronously. Concurrent calls each spawn
// their own process.
type Extractor struct {
	cfg      Config
	runner   Runner
	logger   *slog.Logger
	artifact string
	version  VersionInfo
}

// NewExtractor checks that the interpreter runs and that the engine
// artifact is in place. Both failures are fatal.
func NewExtractor(ctx context.Context, cfg Config, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return newExtractor(ctx, cfg, execRunner{logger: logger}, logger)
}

func newExtractor(ctx context.Context, cfg Config, r Runner, logger *slog.Logger) (*Extractor, error) {
	if cfg.Interpreter == "" {
		cfg.Interpreter = constants.DefaultInterpreter
	}
	if cfg.Encoding == "" {
		cfg.Encoding = constants.DefaultEncoding
	}

	version, err := Probe(ctx, r, cfg.Interpreter)
	if err != nil {
		logger.Error("runtime probe failed", "interpreter", cfg.Interpreter, "error", err)
		return nil, err
	}
	logger.Debug("runtime ok", "interpreter", cfg.Interpreter, "version", version.Version)

	artifact := cfg.ArtifactPath
	if artifact != "" {
		if _, err := os.Stat(artifact); err != nil {
			return nil, fmt.Errorf("%w: engine artifact: %w", common.ErrIO, err)
		}
	} else {
		payload := cfg.Payload
		if len(payload) == 0 {
			if payload, err = EmbeddedPayload(); err != nil {
				return nil, err
			}
		}
		art, err := Provision(payload, cfg.ArtifactDir, constants.ArtifactFileName)
		if err != nil {
			logger.Error("artifact provisioning failed", "dir", cfg.ArtifactDir, "error", err)
			return nil, err
		}
		logger.Debug("artifact ready", "path", art.Path, "sha256", art.SHA256, "written", art.Written)
		artifact = art.Path
	}

	return &Extractor{cfg: cfg, runner: r, logger: logger, artifact: artifact, version: version}, nil
}

// ArtifactPath returns the engine jar in use.
func (e *Extractor) ArtifactPath() string { return e.artifact }

// RuntimeVersion returns what the interpreter reported at construction.
func (e *Extractor) RuntimeVersion() VersionInfo { return e.version }

// Extract runs the engine on req and decodes its output.
func (e *Extractor) Extract(ctx context.Context, req Request) (*Table, error) {
	start := time.Now()
	req = req.Normalize()
	if err := common.CheckReadableFile(req.FilePath); err != nil {
		return nil, err
	}

	inv := BuildInvocation(req)
	args := append([]string{"-Dfile.encoding=" + e.cfg.Encoding, "-jar", e.artifact}, inv.Args()...)
	e.logger.Debug("starting tabula extraction", "path", req.FilePath, "pages", req.Pages, "mode", req.ModeString(), "invocation", inv.String())

	ctx, cancel := common.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	res, err := e.runner.Run(ctx, e.cfg.Interpreter, args...)
	if err != nil {
		return nil, &ProcessError{Exe: e.cfg.Interpreter, ExitCode: -1, Stderr: string(res.Stderr), Err: err}
	}
	if res.ExitCode != 0 && len(bytes.TrimSpace(res.Stdout)) == 0 {
		return nil, &ProcessError{
			Exe:      e.cfg.Interpreter,
			ExitCode: res.ExitCode,
			Stderr:   string(res.Stderr),
			Err:      errors.New("engine produced no output"),
		}
	}

	t, err := Decode(res.Stdout, DecodeOptions{ReplicateFirstRow: e.cfg.ReplicateFirstRow})
	if err != nil {
		if res.ExitCode != 0 {
			return nil, &ProcessError{Exe: e.cfg.Interpreter, ExitCode: res.ExitCode, Stderr: string(res.Stderr), Err: err}
		}
		e.logger.Error("tabula decode failed", "path", req.FilePath, "error", err)
		return nil, err
	}
	if res.ExitCode != 0 {
		e.logger.Warn("engine exited non-zero but produced a table",
			"path", req.FilePath,
			"exit_code", res.ExitCode,
			"stderr", truncate(string(res.Stderr), 8<<10),
		)
	}

	e.logger.Info("tabula.extract.ok",
		"job_id", common.JobIDFromContext(ctx),
		"path", req.FilePath,
		"pages", len(t.Pages),
		"rows", t.NumRows(),
		"cols", t.NumCols(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return t, nil
}
