package services

import (
	"sync"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// Ensure SelectionState implements the interface.
var _ driving.SelectionState = (*SelectionState)(nil)

// SelectionState tracks which connector and which file are chosen.
// Readiness is derived from the two selections on every call.
type SelectionState struct {
	directory driving.ConnectorDirectory

	mu        sync.RWMutex
	connector *domain.Connector
	file      *domain.Blob
}

// NewSelectionState creates an empty selection over a directory snapshot.
func NewSelectionState(directory driving.ConnectorDirectory) *SelectionState {
	return &SelectionState{directory: directory}
}

// SelectConnector records the chosen connector and caches its routing metadata.
func (s *SelectionState) SelectConnector(id string) error {
	if s.directory == nil {
		return domain.ErrDirectoryNotLoaded
	}
	c, err := s.directory.Get(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.connector = c
	logger.Debug("selected connector %s (source=%s object=%s)", c.ID, c.SourceAPIName, c.ObjectAPIName)
	return nil
}

// SelectFile records the pending file, replacing any previous one.
func (s *SelectionState) SelectFile(blob domain.Blob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = &blob
	logger.Debug("selected file %s (%d bytes)", blob.Name, blob.Size())
}

// CanSubmit reports whether both a connector and a file are selected.
func (s *SelectionState) CanSubmit() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connector != nil && s.file != nil
}

// Connector returns the selected connector.
func (s *SelectionState) Connector() (domain.Connector, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.connector == nil {
		return domain.Connector{}, false
	}
	return *s.connector, true
}

// File returns the pending file.
func (s *SelectionState) File() (domain.Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.file == nil {
		return domain.Blob{}, false
	}
	return *s.file, true
}

// Reset clears both selections.
func (s *SelectionState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connector = nil
	s.file = nil
}
