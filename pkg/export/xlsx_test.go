package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWorkbook(&buf,
		Sheet{
			Name:    "Summary",
			Headers: []string{"Metric", "Value"},
			Rows:    [][]interface{}{{"Total items", 3}, {"Deadstock value", 1250.5}},
		},
		Sheet{
			Name:    "Items",
			Headers: []string{"Product", "Risk"},
			Rows:    [][]interface{}{{"Desk Lamp", "CRITICAL"}},
		},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Items"}, f.GetSheetList())

	v, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1250.5", v)

	rows, err := f.GetRows("Items")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Product", "Risk"}, {"Desk Lamp", "CRITICAL"}}, rows)
}

func TestWriteWorkbook_NoSheets(t *testing.T) {
	assert.Error(t, WriteWorkbook(&bytes.Buffer{}))
}
