package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ingest-cli/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestFileSource_Open(t *testing.T) {
	p := writeFile(t, "leads.csv", "a,b\n1,2\n")
	source := NewFileSource()

	blob, err := source.Open(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "leads.csv", blob.Name)
	assert.Equal(t, "text/csv", blob.MIMEType)
	assert.Equal(t, []byte("a,b\n1,2\n"), blob.Data)
	assert.Equal(t, 8, blob.Size())
}

func TestFileSource_FileScheme(t *testing.T) {
	p := writeFile(t, "leads.csv", "a,b")

	blob, err := NewFileSource().Open(context.Background(), "file://"+p)
	require.NoError(t, err)
	assert.Equal(t, "leads.csv", blob.Name)
}

func TestFileSource_EmptyFileIsReadable(t *testing.T) {
	p := writeFile(t, "empty.csv", "")

	blob, err := NewFileSource().Open(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, blob.Data)
}

func TestFileSource_Errors(t *testing.T) {
	source := NewFileSource()

	_, err := source.Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = source.Open(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.Open(ctx, writeFile(t, "a.csv", "a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSource_Scheme(t *testing.T) {
	assert.Equal(t, "file", NewFileSource().Scheme())
}
