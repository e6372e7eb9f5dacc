package publisher

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltPublisher(t *testing.T) {
	p, err := NewBoltPublisher(filepath.Join(t.TempDir(), "docs", "documents.db"), "http://localhost:8000/")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	data := []byte("%PDF-1.3 test")
	doc, err := p.Publish(context.Background(), data, "progress-reports")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(doc.PublicID, "progress-reports/"))
	assert.True(t, strings.HasSuffix(doc.PublicID, ".pdf"))
	assert.Equal(t, "http://localhost:8000/v1/documents/files/"+doc.PublicID, doc.URL)

	got, err := p.Open(doc.PublicID)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// every publish gets its own key
	other, err := p.Publish(context.Background(), data, "progress-reports")
	require.NoError(t, err)
	assert.NotEqual(t, doc.PublicID, other.PublicID)

	_, err = p.Open("progress-reports/missing.pdf")
	assert.Equal(t, ErrNotFound, err)
}

func TestBoltPublisher_CanceledContext(t *testing.T) {
	p, err := NewBoltPublisher(filepath.Join(t.TempDir(), "documents.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Publish(ctx, []byte("x"), "f")
	assert.Equal(t, context.Canceled, err)
}
