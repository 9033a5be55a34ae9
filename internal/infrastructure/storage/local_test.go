package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	key, err := store.Save(ctx, "resumes", ports.Upload{Filename: "cv.pdf", Body: strings.NewReader("%PDF-1.7")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "resumes/"))
	assert.Equal(t, "/uploads/"+key, store.URL(key))

	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(key)))
	require.NoError(t, err)

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.7", string(data))

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key))

	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "../secret")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.ErrorIs(t, store.Delete(context.Background(), "/etc/passwd"), domain.ErrFileNotFound)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestLocalStore_SaveFailureLeavesNothing(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root, "/uploads")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "avatars", ports.Upload{Filename: "a.png", Body: failingReader{}})
	require.Error(t, err)

	var files []string
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, _ error) error {
		if d != nil && !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	assert.Empty(t, files)
}
