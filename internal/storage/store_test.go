package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdraw/backend/internal/models"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Save("drawing_200x100R10mm.dxf", models.FormatDXF, strings.NewReader("0\nEOF\n"))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, int64(6), rec.Size)
	assert.Equal(t, models.FormatDXF, rec.Format)

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Name, got.Name)

	path, err := s.FilePath(rec.ID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\nEOF\n", string(data))
}

func TestGetUnknown(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get("missing")
	assert.Error(t, err)
	_, err = s.FilePath("missing")
	assert.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Save("a.dxf", models.FormatDXF, strings.NewReader("a"))
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.Save("b.pdf", models.FormatPDF, strings.NewReader("b"))
	require.NoError(t, err)

	list, err := s.List(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	limited, err := s.List(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	rec, err := s.Save("a.dxf", models.FormatDXF, strings.NewReader("a"))
	require.NoError(t, err)
	path := filepath.Join(s.dir, rec.ID)

	require.NoError(t, s.Delete(rec.ID))
	_, err = s.Get(rec.ID)
	assert.Error(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, s.Delete(rec.ID))
}
