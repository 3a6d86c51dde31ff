package driving

import "github.com/custodia-labs/ingest-cli/internal/core/domain"

// SelectionState tracks the chosen connector and file.
type SelectionState interface {
	// SelectConnector records the connector with the given ID.
	// On a lookup miss the state is unchanged and domain.ErrLookup is returned.
	SelectConnector(id string) error

	// SelectFile records the pending file, replacing any previous one.
	SelectFile(blob domain.Blob)

	// CanSubmit reports whether both a connector and a file are selected.
	CanSubmit() bool

	// Connector returns the selected connector, if any.
	Connector() (domain.Connector, bool)

	// File returns the pending file, if any.
	File() (domain.Blob, bool)

	// Reset clears both selections.
	Reset()
}
