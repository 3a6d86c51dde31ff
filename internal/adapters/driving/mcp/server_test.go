package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing directory returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Upload: &mockUploadService{}})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDirectory)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Directory: &mockDirectory{},
			Upload:    &mockUploadService{},
			History:   &mockHistoryService{},
		})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing upload service returns error", func(t *testing.T) {
		ports := &Ports{Directory: &mockDirectory{}}
		assert.ErrorIs(t, ports.Validate(), ErrMissingUploadService)
	})

	t.Run("history is optional", func(t *testing.T) {
		ports := &Ports{Directory: &mockDirectory{}, Upload: &mockUploadService{}}
		assert.NoError(t, ports.Validate())
	})
}
