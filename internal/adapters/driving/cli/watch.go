package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

var (
	watchConnector  string
	watchSettle     time.Duration
	watchExtensions []string
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Upload CSV files dropped into a directory",
	Long: `Watch a directory and upload every CSV file that is created or changed
in it through one connector. A file is uploaded once it has been quiet
for the settle period. Uploads run one at a time.

Stop with Ctrl+C.`,
	Example: `  ingest watch ./exports --connector 0Xk1
  ingest watch ./drop -c Leads --settle 2s --ext csv --ext tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchConnector, "connector", "c", "", "connector ID or label")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "quiet period before upload")
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", []string{"csv"}, "file extensions to upload")
	_ = watchCmd.MarkFlagRequired("connector")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploadService == nil {
		return errors.New("upload service not configured")
	}

	connectors, err := loadDirectory(cmd.Context())
	if err != nil {
		return err
	}
	connectorID, err := resolveConnector(connectors, watchConnector)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(args[0], connectorID, uploadService,
		watch.WithSettle(watchSettle),
		watch.WithExtensions(watchExtensions...),
		watch.WithHandler(func(path string, record *domain.UploadRecord, err error) {
			switch {
			case err != nil:
				cmd.PrintErrf("%s: %v\n", path, err)
			case record.Status == domain.UploadFailed:
				cmd.PrintErrf("%s: failed at %s\n", path, record.ErrorLocation)
			default:
				cmd.Printf("%s: uploaded %d rows (%s)\n", path, record.Rows, record.ID)
			}
		}),
	)

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
