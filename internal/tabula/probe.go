package tabula

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/tabula-extract/internal/common"
)

var reVersion = regexp.MustCompile(`version "([^"]+)"`)

// VersionInfo is what the interpreter reported for -version.
type VersionInfo struct {
	Raw     string
	Version string // e.g. "17.0.2"; empty when not recognised
}

// Probe runs `<interpreter> -version`. The JVM prints its banner on stderr,
// so that is the stream inspected; empty output counts as missing.
func Probe(ctx context.Context, r Runner, interpreter string) (VersionInfo, error) {
	res, err := r.Run(ctx, interpreter, "-version")
	if err != nil {
		return VersionInfo{}, fmt.Errorf("%w: could not run %s -version: %w", common.ErrRuntimeMissing, interpreter, err)
	}
	raw := strings.TrimSpace(string(res.Stderr))
	if raw == "" {
		return VersionInfo{}, fmt.Errorf("%w: %s -version printed nothing; make sure it is in $PATH", common.ErrRuntimeMissing, interpreter)
	}
	info := VersionInfo{Raw: raw}
	if m := reVersion.FindStringSubmatch(raw); m != nil {
		info.Version = m[1]
	}
	return info, nil
}
