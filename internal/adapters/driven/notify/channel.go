package notify

import (
	"context"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure ChannelNotifier implements the interface.
var _ driven.Notifier = (*ChannelNotifier)(nil)

// DefaultBuffer is the number of undelivered notices kept.
const DefaultBuffer = 8

// ChannelNotifier queues notices for a consumer.
// Notify never blocks; when the buffer is full the notice is dropped.
type ChannelNotifier struct {
	ch chan domain.Notice
}

// NewChannelNotifier creates a notifier with the given buffer size.
func NewChannelNotifier(buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &ChannelNotifier{ch: make(chan domain.Notice, buffer)}
}

// Notify queues the notice.
func (n *ChannelNotifier) Notify(ctx context.Context, notice domain.Notice) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case n.ch <- notice:
	default:
		logger.Warn("notice queue full, dropping %q", notice.String())
	}
	return nil
}

// Notices returns the channel notices are delivered on.
func (n *ChannelNotifier) Notices() <-chan domain.Notice {
	return n.ch
}
