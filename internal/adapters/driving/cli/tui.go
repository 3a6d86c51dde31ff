package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Pick a connector, attach a file and upload it. Outcomes appear as
notices in the status bar.

Controls:
  ↑/k, ↓/j - Navigate connectors
  Enter    - Choose connector / attach file
  Tab      - Switch between connector list and file input
  Ctrl+U   - Upload
  Ctrl+X   - Dismiss notice
  Esc      - Back
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if directoryService == nil || selectionState == nil || uploadService == nil {
		return errors.New("services not configured")
	}

	ports := &tui.Ports{
		Directory: directoryService,
		Selection: selectionState,
		Upload:    uploadService,
		History:   historyService,
		Settings:  settingsService,
	}

	// Notices go to the status bar instead of the terminal while the TUI runs.
	if noticeRouter != nil {
		sink := notify.NewChannelNotifier(notify.DefaultBuffer)
		noticeRouter.SetSink(sink)
		ports.Notices = sink.Notices()
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
