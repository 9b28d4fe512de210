package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"TABULA_JAVA", "TABULA_JAR", "TABULA_ARTIFACT_DIR", "TABULA_TIMEOUT", "TABULA_REPLICATE_FIRST_ROW", "DB_URL", "GRPC_ADDR"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	if cfg.Tabula.Interpreter != "java" || cfg.Tabula.Encoding != "UTF8" {
		t.Fatalf("unexpected tabula defaults: %+v", cfg.Tabula)
	}
	if cfg.Tabula.ArtifactDir != filepath.Join(os.TempDir(), "tabula-go") {
		t.Fatalf("artifact dir = %q", cfg.Tabula.ArtifactDir)
	}
	if cfg.Tabula.Timeout != 0 || cfg.Tabula.ReplicateFirstRow {
		t.Fatalf("unexpected defaults: %+v", cfg.Tabula)
	}
	if cfg.Server.GRPCAddr != ":8080" || cfg.Database.DSN != "" {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Server, cfg.Database)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("TABULA_JAVA", "/opt/jdk/bin/java")
	t.Setenv("TABULA_TIMEOUT", "90s")
	t.Setenv("TABULA_REPLICATE_FIRST_ROW", "yes")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	cfg := LoadConfig()
	if cfg.Tabula.Interpreter != "/opt/jdk/bin/java" || cfg.Tabula.Timeout != 90*time.Second || !cfg.Tabula.ReplicateFirstRow {
		t.Fatalf("env not applied: %+v", cfg.Tabula)
	}
	if cfg.Database.MaxConns != 4 {
		t.Fatalf("bad int should fall back to default, got %d", cfg.Database.MaxConns)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Tabula.Timeout = -time.Second
	err := cfg.Validate()
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != "CONFIG_ERROR" || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestToStatus(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{fmt.Errorf("%w: x", ErrInvalidInput), codes.InvalidArgument},
		{fmt.Errorf("%w: x", ErrNotFound), codes.NotFound},
		{fmt.Errorf("%w: x", ErrDecode), codes.DataLoss},
		{fmt.Errorf("%w: x", ErrProcess), codes.Unavailable},
		{fmt.Errorf("%w: x", ErrRuntimeMissing), codes.FailedPrecondition},
		{fmt.Errorf("%w: x", ErrIO), codes.FailedPrecondition},
		{errors.New("other"), codes.Internal},
		{status.Error(codes.NotFound, "already a status"), codes.NotFound},
	}
	for _, c := range cases {
		if got := status.Code(ToStatus(c.err)); got != c.code {
			t.Errorf("%v: code = %v, want %v", c.err, got, c.code)
		}
	}
	if ToStatus(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestValidator(t *testing.T) {
	v := NewValidator().
		Field("file", "", Required).
		Field("file", "report.txt", PDFExtension).
		Field("file", 42, PDFExtension)
	if len(v.Errors()) != 3 {
		t.Fatalf("errors = %v", v.Errors())
	}
	if !errors.Is(v.Error(), ErrValidation) {
		t.Fatalf("expected ErrValidation")
	}
	if status.Code(ValidateAndReturnError(v)) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument")
	}

	ok := NewValidator().Field("file", "/x/Report.PDF", Required, PDFExtension)
	if ok.Error() != nil {
		t.Fatalf("unexpected error: %v", ok.Error())
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(file, []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckReadableFile(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckReadableFile(filepath.Join(dir, "missing.pdf")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := CheckReadableFile(dir); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for directory, got %v", err)
	}
	if err := CheckReadableFile("  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty path, got %v", err)
	}
}
