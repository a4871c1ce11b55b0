package photos

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "fotos")
	s, err := NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := s.Save(context.Background(), "entrega_42.jpg", bytes.NewReader([]byte("jpeg")))
	require.NoError(t, err)
	require.Equal(t, "fotos/entrega_42.jpg", ref)

	got, err := os.ReadFile(filepath.Join(dir, "entrega_42.jpg"))
	require.NoError(t, err)
	require.Equal(t, "jpeg", string(got))

	require.NoError(t, s.Remove(ref))
	_, err = os.Stat(filepath.Join(dir, "entrega_42.jpg"))
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, s.Remove(ref), "removing a missing photo is not an error")
}

func TestLocalStore_SaveDoesNotOverwrite(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "a.jpg", bytes.NewReader([]byte("first")))
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "a.jpg", bytes.NewReader([]byte("second")))
	require.Error(t, err)

	got, err := os.ReadFile(filepath.Join(s.Dir(), "a.jpg"))
	require.NoError(t, err)
	require.Equal(t, "first", string(got))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestLocalStore_SaveRemovesPartialFile(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "broken.jpg", failingReader{})
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "broken.jpg"))
	require.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestLocalStore_SaveCanceled(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Save(ctx, "late.jpg", bytes.NewReader([]byte("x")))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	t.Parallel()

	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../x.jpg", "a/b.jpg", `a\b.jpg`} {
		_, err := s.Save(context.Background(), name, bytes.NewReader(nil))
		require.ErrorIs(t, err, ErrInvalidName, name)
	}
	require.ErrorIs(t, s.Remove("fotos/../secret"), ErrInvalidName)
}

func TestNewLocalStore_EmptyDir(t *testing.T) {
	t.Parallel()

	_, err := NewLocalStore("")
	require.Error(t, err)
}

func TestExt(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"photo.JPG":           ".jpg",
		"IMG_001.png":         ".png",
		"noext":               DefaultExt,
		"weird.j$g":           DefaultExt,
		"archive.verylongext": DefaultExt,
		`C:\tmp\foto.jpeg`:    ".jpeg",
		"dir/pic.webp":        ".webp",
		"trailingdot.":        DefaultExt,
	}
	for in, want := range cases {
		require.Equal(t, want, Ext(in), in)
	}
}
