package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXLSXRoundTrip(t *testing.T) {
	table := New("name", "longitude", "latitude")
	table.Append(Row{"name": "강남역", "longitude": 127.0276, "latitude": 37.4979})
	table.Append(Row{"name": "역삼역", "longitude": nil, "latitude": nil})

	path := filepath.Join(t.TempDir(), "out", "stations.xlsx")
	require.NoError(t, WriteXLSX(table, path, "stations"))

	got, err := ReadXLSX(path, "stations")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "longitude", "latitude"}, got.Columns())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "강남역", got.Value(0, "name"))
	assert.Equal(t, "127.0276", got.Value(0, "longitude"))
	assert.Equal(t, "37.4979", got.Value(0, "latitude"))
	assert.Equal(t, "", got.Value(1, "longitude"))
}

func TestReadXLSX_DefaultsToActiveSheet(t *testing.T) {
	table := New("name")
	table.Append(Row{"name": "강남역"})

	path := filepath.Join(t.TempDir(), "stations.xlsx")
	require.NoError(t, WriteXLSX(table, path, ""))

	got, err := ReadXLSX(path, "")
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "강남역", got.Value(0, "name"))
}

func TestReadXLSX_MissingSheet(t *testing.T) {
	table := New("name")
	path := filepath.Join(t.TempDir(), "stations.xlsx")
	require.NoError(t, WriteXLSX(table, path, ""))

	_, err := ReadXLSX(path, "no-such-sheet")
	assert.Error(t, err)
}

func TestReadXLSX_MissingFile(t *testing.T) {
	_, err := ReadXLSX(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}
