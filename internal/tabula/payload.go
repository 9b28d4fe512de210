package tabula

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/joseph-ayodele/tabula-extract/constants"
	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

// dist holds the engine jar when the build bundles one (see dist/README.md).
//
//go:embed dist
var dist embed.FS

// EmbeddedPayload returns the bundled engine jar.
func EmbeddedPayload() ([]byte, error) {
	b, err := fs.ReadFile(dist, path.Join("dist", constants.ArtifactFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s is not bundled in this build; set TABULA_JAR to an installed copy", common.ErrIO, constants.ArtifactFileName)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read embedded payload: %w", common.ErrIO, err)
	}
	return b, nil
}
