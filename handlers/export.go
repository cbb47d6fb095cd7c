package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/agrogreen/models"
)

// exportBaseHeader is shared by every status page's export.
var exportBaseHeader = []string{
	"Inspection Code", "Warehouse Code", "State", "Branch", "Location",
	"Business Type", "Warehouse Name", "Bank State", "Bank Branch",
	"Bank Name", "IFSC Code", "Receipt Type", "Created At",
}

// exportExtraColumns returns the status-specific trailing columns.
func exportExtraColumns(status models.InspectionStatus) []string {
	switch status {
	case models.StatusActivated, models.StatusClosed, models.StatusReactivate:
		return []string{"Date Of Inspection", "Activated At", "Insurance Status"}
	case models.StatusResubmitted:
		return []string{"Checker Remarks"}
	default:
		return nil
	}
}

// BuildExportRows renders a status-scoped record list to tabular rows,
// header first, for the CSV and Excel exports.
func BuildExportRows(records []models.InspectionRecord, status models.InspectionStatus, now time.Time) [][]string {
	rows := [][]string{append(append([]string{}, exportBaseHeader...), exportExtraColumns(status)...)}

	for i := range records {
		r := &records[i]
		row := []string{
			r.InspectionCode,
			r.WarehouseCode,
			r.State,
			r.Branch,
			r.Location,
			strings.ToUpper(r.BusinessType),
			r.WarehouseName,
			r.BankState,
			r.BankBranch,
			r.BankName,
			r.IfscCode,
			r.ReceiptType,
			r.CreatedAt.Format("2006-01-02"),
		}

		switch status {
		case models.StatusActivated, models.StatusClosed, models.StatusReactivate:
			row = append(row, string(r.Data.DateOfInspection))
			if at, ok := r.History.EnteredAt(models.StatusActivated); ok {
				row = append(row, at.Format("2006-01-02"))
			} else {
				row = append(row, "")
			}
			row = append(row, string(r.InsuranceAlert(now)))
		case models.StatusResubmitted:
			row = append(row, r.CheckerRemarks)
		}

		rows = append(rows, row)
	}
	return rows
}

// writeCSV renders rows as quoted, comma-separated CSV.
func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeExcel renders rows as a single-sheet workbook.
func writeExcel(sheetName string, rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}

// ExportInspectionsCSV exports the status-scoped, filtered list as CSV.
func ExportInspectionsCSV(w http.ResponseWriter, r *http.Request) {
	status, records, ok := fetchScopedList(w, r)
	if !ok {
		return
	}

	csvData, err := writeCSV(BuildExportRows(records, status, time.Now()))
	if err != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inspections_%s_%s.csv", status, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(csvData)))
	w.WriteHeader(http.StatusOK)
	w.Write(csvData)
}

// ExportInspectionsExcel exports the status-scoped, filtered list as xlsx.
func ExportInspectionsExcel(w http.ResponseWriter, r *http.Request) {
	status, records, ok := fetchScopedList(w, r)
	if !ok {
		return
	}

	buffer, err := writeExcel("Inspections", BuildExportRows(records, status, time.Now()))
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("inspections_%s_%s.xlsx", status, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
