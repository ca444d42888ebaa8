package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"research-tracker/internal/domain"
)

func TestLocalStore_RoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc_report.pdf", strings.NewReader("pdf bytes")))

	rc, err := store.Open(ctx, "abc_report.pdf")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "pdf bytes", string(data))

	refs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc_report.pdf"}, refs)

	require.NoError(t, store.Delete(ctx, "abc_report.pdf"))
	refs, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestLocalStore_OpenMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "nope.bin")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestLocalStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "nope.bin"))
}

func TestLocalStore_RejectsPathTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	var ve *domain.ValidationError
	err = store.Save(ctx, "../escape.txt", strings.NewReader("x"))
	require.ErrorAs(t, err, &ve)

	_, err = store.Open(ctx, "a/b.txt")
	require.ErrorAs(t, err, &ve)
}
