package tabula

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

func TestProvision_WritesOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tabula-go")
	payload := []byte("PK\x03\x04 fake jar")

	art, err := Provision(payload, dir, "engine.jar")
	if err != nil {
		t.Fatalf("first provision: %v", err)
	}
	if !art.Written || art.Path != filepath.Join(dir, "engine.jar") {
		t.Fatalf("unexpected artifact: %+v", art)
	}

	old := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	if err := os.Chtimes(art.Path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	again, err := Provision(payload, dir, "engine.jar")
	if err != nil {
		t.Fatalf("second provision: %v", err)
	}
	if again.Written {
		t.Fatalf("expected no write for identical content")
	}
	st, err := os.Stat(art.Path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !st.ModTime().Equal(old) {
		t.Fatalf("mtime changed: %v != %v", st.ModTime(), old)
	}
	got, _ := os.ReadFile(art.Path)
	if !bytes.Equal(got, payload) {
		t.Fatalf("content changed")
	}
}

func TestProvision_ReplacesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "engine.jar")
	if err := os.WriteFile(target, []byte("truncated"), 0o644); err != nil {
		t.Fatal(err)
	}
	payload := []byte("the real jar")
	art, err := Provision(payload, dir, "engine.jar")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !art.Written {
		t.Fatalf("expected rewrite of mismatching file")
	}
	got, _ := os.ReadFile(target)
	if !bytes.Equal(got, payload) {
		t.Fatalf("content = %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %d entries", len(entries))
	}
}

func TestProvision_EmptyPayload(t *testing.T) {
	_, err := Provision(nil, t.TempDir(), "engine.jar")
	if !errors.Is(err, common.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestProvision_UnwritableDir(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Provision([]byte("x"), filepath.Join(blocker, "sub"), "engine.jar")
	if !errors.Is(err, common.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestEmbeddedPayload_MissingJar(t *testing.T) {
	if _, err := dist.Open("dist/" + "tabula-1.0.5-jar-with-dependencies.jar"); err == nil {
		t.Skip("engine jar bundled in this build")
	}
	if _, err := EmbeddedPayload(); !errors.Is(err, common.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}
