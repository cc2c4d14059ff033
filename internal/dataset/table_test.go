package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_AddColumn(t *testing.T) {
	table := New("name", "address")

	table.AddColumn("longitude")
	table.AddColumn("longitude")
	table.AddColumn("address")

	assert.Equal(t, []string{"name", "address", "longitude"}, table.Columns())
	assert.True(t, table.HasColumn("longitude"))
	assert.False(t, table.HasColumn("latitude"))
}

func TestTable_Cells(t *testing.T) {
	table := New("name", "address")
	table.Append(Row{"name": "강남역"})

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "강남역", table.Value(0, "name"))
	assert.Nil(t, table.Value(0, "address"))

	table.Set(0, "address", "서울 강남구 강남대로 396")
	assert.Equal(t, "서울 강남구 강남대로 396", table.Value(0, "address"))
}

func TestTable_AppendNilRow(t *testing.T) {
	table := New("name")
	table.Append(nil)

	assert.Equal(t, 1, table.Len())
	assert.NotPanics(t, func() { table.Set(0, "name", "강남역") })
}

func TestTable_CloneIsIndependent(t *testing.T) {
	table := New("name")
	table.Append(Row{"name": "강남역"})

	clone := table.Clone()
	clone.AddColumn("longitude")
	clone.Set(0, "name", "역삼역")
	clone.Append(Row{"name": "선릉역"})

	assert.Equal(t, []string{"name"}, table.Columns())
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "강남역", table.Value(0, "name"))
}
