package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"p9e.in/agrogreen/models"
)

func exportRecord() models.InspectionRecord {
	created := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	activated := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
	return models.InspectionRecord{
		InspectionCode: "INSP-010",
		WarehouseCode:  "WH-X",
		State:          "Karnataka",
		Branch:         "Bengaluru",
		Location:       "Peenya",
		BusinessType:   "pwh",
		WarehouseName:  "Peenya Warehouse",
		BankState:      "Karnataka",
		BankBranch:     "Bengaluru",
		BankName:       "Canara Bank",
		IfscCode:       "CNRB0000406",
		ReceiptType:    "SR",
		Status:         string(models.StatusActivated),
		CheckerRemarks: "recheck chamber 2",
		CreatedAt:      created,
		History:        models.StatusHistory{}.Append(models.StatusActivated, activated),
		Data: models.WarehouseInspectionData{
			DateOfInspection: "2025-03-09T00:00:00Z",
		},
	}
}

func TestBuildExportRowsBaseColumns(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := BuildExportRows([]models.InspectionRecord{exportRecord()}, models.StatusPending, now)

	require.Len(t, rows, 2)
	assert.Equal(t, exportBaseHeader, rows[0])

	row := rows[1]
	assert.Equal(t, "INSP-010", row[0])
	assert.Equal(t, "PWH", row[5]) // business type uppercased
	assert.Equal(t, "2025-03-10", row[12])
	assert.Len(t, row, len(exportBaseHeader))
}

func TestBuildExportRowsActivatedColumns(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	rows := BuildExportRows([]models.InspectionRecord{exportRecord()}, models.StatusActivated, now)

	header := rows[0]
	assert.Equal(t, "Date Of Inspection", header[len(header)-3])
	assert.Equal(t, "Activated At", header[len(header)-2])
	assert.Equal(t, "Insurance Status", header[len(header)-1])

	row := rows[1]
	assert.Equal(t, "2025-03-09T00:00:00Z", row[len(row)-3])
	assert.Equal(t, "2025-03-12", row[len(row)-2])
	assert.Equal(t, "none", row[len(row)-1])
}

func TestBuildExportRowsResubmittedColumns(t *testing.T) {
	rows := BuildExportRows([]models.InspectionRecord{exportRecord()}, models.StatusResubmitted, time.Now())

	header := rows[0]
	assert.Equal(t, "Checker Remarks", header[len(header)-1])
	assert.Equal(t, "recheck chamber 2", rows[1][len(rows[1])-1])
}

func TestBuildExportRowsMissingActivationStamp(t *testing.T) {
	rec := exportRecord()
	rec.History = nil

	rows := BuildExportRows([]models.InspectionRecord{rec}, models.StatusActivated, time.Now())
	row := rows[1]
	assert.Equal(t, "", row[len(row)-2])
}

func TestWriteCSV(t *testing.T) {
	data, err := writeCSV([][]string{{"a", "b"}, {"1", "with, comma"}})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"with, comma\"\n", string(data))
}

func TestWriteExcel(t *testing.T) {
	buf, err := writeExcel("Inspections", [][]string{{"a", "b"}, {"1", "2"}})
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
