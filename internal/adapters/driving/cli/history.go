package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent uploads",
	Long:  `List recent upload attempts, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one upload attempt",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of uploads")
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, records)
	}

	if len(records) == 0 {
		cmd.Println("No uploads yet.")
		return nil
	}

	for i := range records {
		r := &records[i]
		cmd.Printf("%s  %s  %-9s  %s -> %s  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status,
			r.FileName, r.ObjectAPIName, outcomeDetail(r))
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get upload: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, record)
	}

	cmd.Printf("ID:        %s\n", record.ID)
	cmd.Printf("Connector: %s\n", record.ConnectorID)
	cmd.Printf("Source:    %s\n", record.SourceAPIName)
	cmd.Printf("Object:    %s\n", record.ObjectAPIName)
	cmd.Printf("File:      %s\n", record.FileName)
	cmd.Printf("Rows:      %d\n", record.Rows)
	cmd.Printf("Bytes:     %d\n", record.Bytes)
	cmd.Printf("Started:   %s\n", record.StartedAt.Local().Format("2006-01-02 15:04:05"))
	cmd.Printf("Duration:  %s\n", record.Duration())
	cmd.Printf("Status:    %s\n", record.Status)
	if detail := outcomeDetail(record); detail != "" {
		cmd.Printf("Detail:    %s\n", detail)
	}
	return nil
}

// outcomeDetail describes why an attempt did not succeed.
func outcomeDetail(r *domain.UploadRecord) string {
	switch r.Status {
	case domain.UploadFailed:
		return "error location: " + r.ErrorLocation
	case domain.UploadErrored:
		return r.Error
	case domain.UploadSucceeded:
	}
	return ""
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
