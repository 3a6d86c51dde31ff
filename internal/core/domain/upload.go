package domain

import "time"

// UploadStatus is the final state of an upload attempt.
type UploadStatus string

const (
	// UploadSucceeded means the endpoint accepted the payload.
	UploadSucceeded UploadStatus = "succeeded"
	// UploadFailed means the endpoint returned a logical failure.
	UploadFailed UploadStatus = "failed"
	// UploadErrored means the attempt never produced a logical result
	// (normalisation or transport error).
	UploadErrored UploadStatus = "error"
)

// UploadRecord captures one upload attempt for history.
type UploadRecord struct {
	ID            string       `json:"id"`
	ConnectorID   string       `json:"connector_id"`
	FileName      string       `json:"file_name"`
	SourceAPIName string       `json:"source_api_name"`
	ObjectAPIName string       `json:"object_api_name"`
	Status        UploadStatus `json:"status"`
	ErrorLocation string       `json:"error_location,omitempty"`
	Error         string       `json:"error,omitempty"`
	Rows          int          `json:"rows"`
	Bytes         int          `json:"bytes"`
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
}

// Duration returns how long the attempt took.
func (r *UploadRecord) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
