package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// SchemeGoogleDrive is the scheme for Google Drive files.
const SchemeGoogleDrive = "gdrive"

// Google Workspace MIME types.
const (
	MimeTypeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	MimeTypeFolder      = "application/vnd.google-apps.folder"
	mimeTypeWorkspace   = "application/vnd.google-apps."
)

// ExportMimeCSV is the format Google Sheets are exported in.
const ExportMimeCSV = "text/csv"

// Ensure DriveSource implements the interface.
var _ driven.BlobSource = (*DriveSource)(nil)

// DriveSource downloads files from Google Drive.
// Google Sheets are exported as CSV (first sheet only, per the Drive API).
type DriveSource struct {
	svc *drive.Service
}

// NewDriveSource wraps an existing Drive service.
func NewDriveSource(svc *drive.Service) *DriveSource {
	return &DriveSource{svc: svc}
}

// NewDriveSourceFromToken creates a Drive source authenticated with an
// OAuth access token. Extra options are passed to drive.NewService.
func NewDriveSourceFromToken(ctx context.Context, token string, opts ...option.ClientOption) (*DriveSource, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: google drive token is empty", domain.ErrInvalidInput)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewDriveSource(svc), nil
}

// Scheme returns "gdrive".
func (s *DriveSource) Scheme() string {
	return SchemeGoogleDrive
}

// Open downloads gdrive://<fileID>.
func (s *DriveSource) Open(ctx context.Context, ref string) (*domain.Blob, error) {
	fileID := strings.Trim(trimScheme(ref, SchemeGoogleDrive), "/")
	if fileID == "" || strings.Contains(fileID, "/") {
		return nil, fmt.Errorf("%w: drive reference %q, want gdrive://<fileID>", domain.ErrInvalidInput, ref)
	}

	file, err := s.svc.Files.Get(fileID).
		Fields("id", "name", "mimeType", "size").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapDriveError(err, "get file "+fileID)
	}
	if file.Size > MaxBlobSize {
		return nil, tooLarge(file.Name, file.Size)
	}

	switch {
	case file.MimeType == MimeTypeFolder:
		return nil, fmt.Errorf("%w: %s is a folder", domain.ErrInvalidInput, file.Name)
	case file.MimeType == MimeTypeGoogleSheet:
		return s.export(ctx, file)
	case strings.HasPrefix(file.MimeType, mimeTypeWorkspace):
		return nil, fmt.Errorf("%w: %s (%s) cannot be exported as CSV",
			domain.ErrUnsupportedSource, file.Name, file.MimeType)
	}

	resp, err := s.svc.Files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, wrapDriveError(err, "download "+file.Name)
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body, file.Name)
	if err != nil {
		return nil, err
	}

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = detectMIME(file.Name, data)
	}
	logger.Debug("downloaded %s from drive (%d bytes)", file.Name, len(data))
	return &domain.Blob{Name: file.Name, MIMEType: mimeType, Data: data}, nil
}

// export downloads a Google Sheet as CSV.
func (s *DriveSource) export(ctx context.Context, file *drive.File) (*domain.Blob, error) {
	resp, err := s.svc.Files.Export(file.Id, ExportMimeCSV).Context(ctx).Download()
	if err != nil {
		return nil, wrapDriveError(err, "export "+file.Name)
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body, file.Name)
	if err != nil {
		return nil, err
	}

	name := file.Name
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	logger.Debug("exported sheet %s from drive (%d bytes)", file.Name, len(data))
	return &domain.Blob{Name: name, MIMEType: ExportMimeCSV, Data: data}, nil
}

// wrapDriveError maps Drive API errors onto domain errors.
func wrapDriveError(err error, op string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: google drive denied access (%d): %w", op, gerr.Code, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
