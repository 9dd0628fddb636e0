package core

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// exportHeaders are the canonical column names; re-importing a file written
// with them maps every field back onto itself.
var exportHeaders = []string{"id", "name", "device_info", "reg_date", "duration"}

// WriteFile exports records to the given path, choosing the format from
// the extension: .csv, .json, .txt (tab-delimited) or .xlsx.
func WriteFile(path string, records []CustomerRecord) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return ExportXLSX(path, records)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	switch ext {
	case ".csv":
		return ExportCSV(f, records)
	case ".json":
		return ExportJSON(f, records)
	case ".txt":
		return ExportTXT(f, records)
	default:
		return fmt.Errorf("unsupported export format %q (use .csv, .json, .txt or .xlsx)", ext)
	}
}

// ExportCSV writes one UTF-8 CSV row per record under the canonical column
// names.
func ExportCSV(w io.Writer, records []CustomerRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeaders); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	for _, rec := range records {
		if err := writer.Write(recordFields(rec)); err != nil {
			return fmt.Errorf("writing CSV: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportJSON writes records as a JSON array of objects. HTML escaping is
// off so names survive byte-for-byte; non-ASCII is never escaped.
func ExportJSON(w io.Writer, records []CustomerRecord) error {
	if records == nil {
		records = []CustomerRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}

// ExportTXT writes tab-delimited plain text with a header line.
func ExportTXT(w io.Writer, records []CustomerRecord) error {
	if _, err := fmt.Fprintln(w, strings.Join(exportHeaders, "\t")); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	for _, rec := range records {
		if _, err := fmt.Fprintln(w, strings.Join(recordFields(rec), "\t")); err != nil {
			return fmt.Errorf("writing text: %w", err)
		}
	}
	return nil
}

// ExportXLSX writes records to the first sheet of a new workbook.
func ExportXLSX(path string, records []CustomerRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing sheet: %w", err)
	}
	for i, rec := range records {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("writing sheet: %w", err)
		}
		row := []any{rec.ID, rec.Name, rec.DeviceInfo, rec.RegDate, rec.Duration}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("writing sheet: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

func recordFields(rec CustomerRecord) []string {
	return []string{
		strconv.FormatUint(uint64(rec.ID), 10),
		rec.Name,
		rec.DeviceInfo,
		rec.RegDate,
		strconv.Itoa(rec.Duration),
	}
}
