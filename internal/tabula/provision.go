package tabula

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joseph-ayodele/tabula-extract/constants"
	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

// Artifact is a provisioned engine file.
type Artifact struct {
	Path    string
	SHA256  string
	Written bool // false when an identical file was already in place
}

// DefaultArtifactDir is <os.TempDir()>/tabula-go.
func DefaultArtifactDir() string {
	return filepath.Join(os.TempDir(), constants.ArtifactDirName)
}

// Provision places payload at dir/name. An existing file with the same
// SHA-256 is left untouched; a differing one is replaced. Writes go to a
// temp file in dir first and are renamed into place, so readers never see
// a partial artifact.
func Provision(payload []byte, dir, name string) (Artifact, error) {
	if dir == "" {
		dir = DefaultArtifactDir()
	}
	if name == "" {
		name = constants.ArtifactFileName
	}
	if len(payload) == 0 {
		return Artifact{}, fmt.Errorf("%w: empty engine payload", common.ErrIO)
	}

	sum := sha256.Sum256(payload)
	art := Artifact{Path: filepath.Join(dir, name), SHA256: hex.EncodeToString(sum[:])}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("%w: create %s: %w", common.ErrIO, dir, err)
	}

	existing, err := os.ReadFile(art.Path)
	switch {
	case err == nil:
		have := sha256.Sum256(existing)
		if bytes.Equal(have[:], sum[:]) {
			return art, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Artifact{}, fmt.Errorf("%w: read %s: %w", common.ErrIO, art.Path, err)
	}

	if err := writeAtomic(art.Path, payload); err != nil {
		return Artifact{}, fmt.Errorf("%w: write %s: %w", common.ErrIO, art.Path, err)
	}
	art.Written = true
	return art, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return err
	}
	return nil
}
