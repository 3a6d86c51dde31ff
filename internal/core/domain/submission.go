package domain

// NormalizedPayload is the transport-ready form of an uploaded CSV.
// It is created fresh for each submission attempt and never persisted.
type NormalizedPayload struct {
	// EncodedContent is the percent-encoded base64 of the normalised CSV text.
	EncodedContent string
	// SourceAPIName is copied from the selected connector.
	SourceAPIName string
	// ObjectAPIName is copied from the selected connector.
	ObjectAPIName string
	// Rows is the number of rows (header included) in the normalised text.
	Rows int
}

// IngestionRequest is the body of the remote ingestion call.
type IngestionRequest struct {
	EncodedCSVData string `json:"encodedCsvData"`
	ObjectAPIName  string `json:"objectApiName"`
	SourceAPIName  string `json:"sourceApiName"`
}

// IngestionResponse is the logical result returned by the remote endpoint.
type IngestionResponse struct {
	Success       bool   `json:"success"`
	ErrorLocation string `json:"errorLocation,omitempty"`
}

// ResultKind tags a SubmissionResult.
type ResultKind string

const (
	// ResultSuccess means the endpoint accepted the payload.
	ResultSuccess ResultKind = "success"
	// ResultFailure means the endpoint rejected the payload.
	ResultFailure ResultKind = "failure"
)

// SubmissionResult is the outcome of one submission attempt.
type SubmissionResult struct {
	Kind ResultKind
	// ErrorLocation is set only for ResultFailure.
	ErrorLocation string
}

// Success returns a successful result.
func Success() SubmissionResult {
	return SubmissionResult{Kind: ResultSuccess}
}

// Failure returns a failed result with the reported error location.
func Failure(errorLocation string) SubmissionResult {
	return SubmissionResult{Kind: ResultFailure, ErrorLocation: errorLocation}
}

// IsSuccess reports whether the endpoint accepted the payload.
func (r SubmissionResult) IsSuccess() bool {
	return r.Kind == ResultSuccess
}

// NoticeLevel is the severity of a user-facing notice.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing message describing an upload outcome.
type Notice struct {
	Level       NoticeLevel
	Title       string
	Message     string
	Dismissible bool
}

// String renders the notice as a single line.
func (n Notice) String() string {
	if n.Message == "" {
		return n.Title
	}
	return n.Title + ": " + n.Message
}
