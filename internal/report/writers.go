package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

// WriteCSV renders the schedule as CSV with a header row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.fields()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const xlsxSheet = "Reinforcement Schedule"

// WriteXLSX renders the schedule as a single-sheet workbook.
func WriteXLSX(path string, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for col, title := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheet, cell, title); err != nil {
			return err
		}
	}

	for i, row := range rows {
		for col, value := range row.fields() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
				return err
			}
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, cellErr := excelize.CoordinatesToCellName(len(Header), 1)
		if cellErr == nil {
			_ = f.SetCellStyle(xlsxSheet, "A1", endCell, style)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Column widths (mm) for the landscape A4 PDF schedule.
var pdfWidths = []float64{22, 22, 18, 18, 18, 18, 18, 18, 18, 18, 22, 22, 22, 20, 14}

// WritePDF renders the schedule as a landscape A4 table.
func WritePDF(path string, rows []Row) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Beam Reinforcement Schedule", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Beam Reinforcement Schedule", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 6.5)
	for i, title := range Header {
		pdf.CellFormat(pdfWidths[i], 6, title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 6.5)
	for _, row := range rows {
		for i, value := range row.fields() {
			pdf.CellFormat(pdfWidths[i], 5.5, value, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
