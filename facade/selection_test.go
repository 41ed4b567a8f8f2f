package facade

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSelectionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenant")
	s := NewFileSelectionStore(path)

	// ยังไม่มีไฟล์ = ยังไม่เคยเลือก ไม่ใช่ error
	id, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.Save("r1"))
	id, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "r1", id)

	require.NoError(t, s.Save("r2"))
	id, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "r2", id)
}
