package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Normalisation Errors.

	// ErrEmptyFile indicates the uploaded file has no rows once the
	// trailing newline artefact is dropped.
	ErrEmptyFile = errors.New("empty file")

	// ErrDecode indicates the file content is not valid base64 or the
	// decoded bytes are not valid UTF-8 text.
	ErrDecode = errors.New("decode failed")

	// Selection Errors.

	// ErrLookup indicates the selected connector is not in the directory snapshot.
	ErrLookup = errors.New("connector not found in directory")

	// ErrDirectoryNotLoaded indicates the connector directory has not been fetched yet.
	ErrDirectoryNotLoaded = errors.New("connector directory not loaded")

	// ErrNotReady indicates an upload was triggered before both a connector
	// and a file were selected.
	ErrNotReady = errors.New("connector and file must both be selected")

	// Submission Errors.

	// ErrSubmissionInFlight indicates an upload is already running.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrTransport indicates the ingestion endpoint could not be reached or
	// returned a response that is not a logical result.
	ErrTransport = errors.New("ingestion transport error")

	// File Source Errors.

	// ErrUnsupportedSource indicates a file reference with an unknown scheme.
	ErrUnsupportedSource = errors.New("unsupported file source")
)
