package constants

// Engine artifact layout: <os.TempDir()>/<ArtifactDirName>/<ArtifactFileName>.
const (
	ArtifactDirName  = "tabula-go"
	ArtifactFileName = "tabula-1.0.5-jar-with-dependencies.jar"
)

const (
	DefaultInterpreter = "java"
	DefaultEncoding    = "UTF8"
	DefaultPages       = "all"

	// OutputFormat is the only engine output format the decoder understands.
	OutputFormat = "JSON"
)

// Mode is the extraction strategy recorded for a job.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeLattice Mode = "lattice"
	ModeStream  Mode = "stream"
	ModeGuess   Mode = "guess"
	ModeArea    Mode = "area"
)
