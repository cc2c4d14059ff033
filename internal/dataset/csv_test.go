package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	table := New("name", "longitude", "latitude", "note")
	table.Append(Row{"name": "강남역", "longitude": 127.0276, "latitude": 37.4979})
	table.Append(Row{"name": "역삼역", "longitude": nil, "latitude": nil, "note": "not found"})

	path := filepath.Join(t.TempDir(), "out", "stations.csv")
	require.NoError(t, WriteCSV(table, path))

	got, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "longitude", "latitude", "note"}, got.Columns())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "강남역", got.Value(0, "name"))
	assert.Equal(t, "127.0276", got.Value(0, "longitude"))
	assert.Equal(t, "37.4979", got.Value(0, "latitude"))
	assert.Equal(t, "", got.Value(1, "longitude"))
	assert.Equal(t, "not found", got.Value(1, "note"))
}

func TestReadCSV_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,address\n강남역\n"), 0o644))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "강남역", got.Value(0, "name"))
	assert.Equal(t, "", got.Value(0, "address"))
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadCSV_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := ReadCSV(path)
	assert.ErrorContains(t, err, "no header row")
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "역삼동", want: "역삼동"},
		{name: "float", in: 127.0276, want: "127.0276"},
		{name: "bool", in: true, want: "true"},
		{name: "int", in: 42, want: "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCell(tt.in))
		})
	}
}
