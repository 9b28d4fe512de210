package constants

// JobStatus is the canonical status for rows in extract_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusRunning JobStatus = "RUNNING" // engine invoked, not yet decoded
	JobStatusOK      JobStatus = "OK"      // table decoded
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
