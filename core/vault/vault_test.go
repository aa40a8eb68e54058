package vault

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intecu/filevault/core/storage"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()

	h, err := storage.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	v, err := New(h)
	require.NoError(t, err)

	return v
}

func ingest(t *testing.T, v *Vault, name, mimeType, folderID string, payload []byte) string {
	t.Helper()

	view, err := v.Ingest(context.Background(), IngestRequest{
		Name:      name,
		MimeType:  mimeType,
		SizeBytes: int64(len(payload)),
		FolderID:  folderID,
		Payload:   payload,
	})
	require.NoError(t, err)

	return view.ID
}

func TestVault_IngestAndBrowse(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	folder, err := v.CreateFolder(ctx, "Reports")
	require.NoError(t, err)

	inFolder := ingest(t, v, "report.pdf", "application/pdf", folder.ID, make([]byte, 1536))
	ingest(t, v, "photo.png", "image/png", "", []byte("png bytes"))

	t.Run("projects fresh uploads for display", func(t *testing.T) {
		views, err := v.Browse(ctx, "")
		require.NoError(t, err)
		require.Len(t, views, 2)

		for _, view := range views {
			assert.Equal(t, "Today", view.Modified)
			if view.ID == inFolder {
				assert.Equal(t, "report.pdf", view.Name)
				assert.Equal(t, "1.5 KB", view.Size)
			}
		}
	})

	t.Run("filters by folder", func(t *testing.T) {
		views, err := v.Browse(ctx, folder.ID)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, inFolder, views[0].ID)
	})
}

func TestVault_Download(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	payload := []byte("download me")
	id := ingest(t, v, "notes.txt", "text/plain", "", payload)

	view, err := v.Download(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", view.Name)
	assert.Equal(t, int64(len(payload)), view.Size)

	content, err := io.ReadAll(view.Content)
	require.NoError(t, err)
	assert.Equal(t, payload, content)

	t.Run("the download view does not alias stored bytes", func(t *testing.T) {
		content[0] = 'X'

		file, err := v.File(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, payload, file.Payload)
	})

	t.Run("unknown ids fail with not found", func(t *testing.T) {
		_, err := v.Download(ctx, "file_0_missing")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestVault_DeleteFiles(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	first := ingest(t, v, "a.txt", "text/plain", "", []byte("a"))
	second := ingest(t, v, "b.txt", "text/plain", "", []byte("b"))

	result := v.DeleteFiles(ctx, []string{first, "file_0_missing", second})
	require.NotEmpty(t, result.OpID)
	require.Len(t, result.Items, 3)

	t.Run("reports exactly the failing item", func(t *testing.T) {
		failed := result.Failed()
		require.Len(t, failed, 1)
		assert.Equal(t, "file_0_missing", failed[0].ID)
		assert.ErrorIs(t, failed[0].Err, storage.ErrNotFound)
	})

	t.Run("committed items stay committed despite the failure", func(t *testing.T) {
		for _, id := range []string{first, second} {
			_, err := v.File(ctx, id)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		}
	})
}

func TestVault_RemoveFolder(t *testing.T) {
	t.Run("cascades over the folder's files", func(t *testing.T) {
		v := newTestVault(t)
		ctx := context.Background()

		folder, err := v.CreateFolder(ctx, "Doomed")
		require.NoError(t, err)

		a := ingest(t, v, "a.txt", "text/plain", folder.ID, []byte("a"))
		b := ingest(t, v, "b.txt", "text/plain", folder.ID, []byte("b"))
		outside := ingest(t, v, "c.txt", "text/plain", "", []byte("c"))

		result, err := v.RemoveFolder(ctx, folder.ID)
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Empty(t, result.Failed())

		for _, id := range []string{a, b} {
			_, err := v.File(ctx, id)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		}

		_, err = v.File(ctx, outside)
		assert.NoError(t, err)

		folders, err := v.Folders(ctx)
		require.NoError(t, err)
		assert.Empty(t, folders)
	})

	t.Run("refuses sentinel folder ids", func(t *testing.T) {
		v := newTestVault(t)

		_, err := v.RemoveFolder(context.Background(), "all")
		require.ErrorIs(t, err, storage.ErrValidation)
	})

	t.Run("fails with not found for an unknown folder", func(t *testing.T) {
		v := newTestVault(t)

		_, err := v.RemoveFolder(context.Background(), "folder_0_missing")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
