package tui

import "errors"

// ErrMissingDirectory is returned when the connector directory is not provided.
var ErrMissingDirectory = errors.New("tui: connector directory is required")

// ErrMissingSelection is returned when the selection state is not provided.
var ErrMissingSelection = errors.New("tui: selection state is required")

// ErrMissingUploadService is returned when the upload service is not provided.
var ErrMissingUploadService = errors.New("tui: upload service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
