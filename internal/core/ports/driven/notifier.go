package driven

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

// Notifier delivers user-facing notices (console line, TUI toast, ...).
type Notifier interface {
	Notify(ctx context.Context, notice domain.Notice) error
}
