// Package blob opens file references for upload.
//
// A reference is either a local path (optionally prefixed with file://),
// gdrive://<fileID> for a Google Drive file, or
// github://owner/repo/path[@ref] for a file in a GitHub repository.
// Router dispatches a reference to the source registered for its scheme.
//
// Every source reads the whole file into memory; files larger than
// MaxBlobSize are rejected.
package blob
