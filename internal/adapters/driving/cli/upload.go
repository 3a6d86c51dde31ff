package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

var (
	uploadConnector string
	uploadJSON      bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a CSV file through a connector",
	Long: `Normalise the header row of a CSV file and upload it through a connector.

The file may be a local path, a Google Drive file (gdrive://<fileID>, Sheets
are exported as CSV) or a file in a GitHub repository
(github://owner/repo/path[@ref]).

Header names have all whitespace removed. Data rows are sent unchanged.
The upload is attempted once; a failure reports where the API rejected
the file.`,
	Example: `  ingest upload leads.csv --connector 0Xk1
  ingest upload gdrive://1AbCdEf --connector Leads
  ingest upload github://acme/data/exports/leads.csv@main -c 0Xk1 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadConnector, "connector", "c", "", "connector ID or label")
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output the upload record as JSON")
	_ = uploadCmd.MarkFlagRequired("connector")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	connectors, err := loadDirectory(cmd.Context())
	if err != nil {
		return err
	}
	connectorID, err := resolveConnector(connectors, uploadConnector)
	if err != nil {
		return err
	}

	record, err := uploadService.UploadFile(cmd.Context(), connectorID, args[0])
	if record != nil {
		if outErr := outputUpload(cmd, record); outErr != nil {
			return outErr
		}
	}
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if record.Status == domain.UploadFailed {
		return fmt.Errorf("upload failed: error location %s", record.ErrorLocation)
	}
	return nil
}

func outputUpload(cmd *cobra.Command, record *domain.UploadRecord) error {
	if uploadJSON {
		return printJSON(cmd, record)
	}

	cmd.Printf("Upload %s\n", record.ID)
	cmd.Printf("  File:   %s (%d rows, %d bytes)\n", record.FileName, record.Rows, record.Bytes)
	cmd.Printf("  Object: %s via %s\n", record.ObjectAPIName, record.SourceAPIName)
	cmd.Printf("  Status: %s\n", record.Status)
	return nil
}
