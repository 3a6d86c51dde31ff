// Package cli provides the cobra command tree for ingest.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

// Options carries the global flags to Bootstrap.
type Options struct {
	ConfigDir string
	DataDir   string
	Ephemeral bool
}

// NoticeRouter redirects outcome notices to another sink.
type NoticeRouter interface {
	SetSink(sink driven.Notifier)
}

// Services are the core services the commands drive.
type Services struct {
	Directory driving.ConnectorDirectory
	Selection driving.SelectionState
	Upload    driving.UploadService
	History   driving.HistoryService
	Settings  driving.SettingsService
	Notices   NoticeRouter
}

// Bootstrap builds the services for a command run. It is set by main.
// The returned cleanup func releases stores and may be nil.
var Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	directoryService driving.ConnectorDirectory
	selectionState   driving.SelectionState
	uploadService    driving.UploadService
	historyService   driving.HistoryService
	settingsService  driving.SettingsService
	noticeRouter     NoticeRouter

	cleanup func()
	opts    Options
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Upload CSV files to an ingestion API",
	Long: `ingest normalises CSV headers and uploads files through a connector
of a remote ingestion API.

Pick a connector, attach a file, and upload. Header names have their
whitespace removed; data rows are sent unchanged.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.ingest)")
	flags.StringVar(&opts.DataDir, "data-dir", "", "data directory for history and caches (default ~/.ingest)")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep settings and history in memory only")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by 'ingest version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices installs the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	directoryService = s.Directory
	selectionState = s.Selection
	uploadService = s.Upload
	historyService = s.History
	settingsService = s.Settings
	noticeRouter = s.Notices
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if Bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	services, done, err := Bootstrap(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
	return nil
}

// requireEndpoint fails with a hint when no ingestion endpoint is configured.
func requireEndpoint() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.Endpoint.IsConfigured() {
		return fmt.Errorf("%w: no ingestion endpoint configured, run 'ingest config endpoint <url>'",
			domain.ErrInvalidInput)
	}
	return nil
}

// loadDirectory fetches the connector snapshot.
func loadDirectory(ctx context.Context) ([]domain.Connector, error) {
	if directoryService == nil {
		return nil, errors.New("connector directory not configured")
	}
	if err := requireEndpoint(); err != nil {
		return nil, err
	}
	connectors, err := directoryService.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load connectors: %w", err)
	}
	return connectors, nil
}
