package roster

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when an uploaded file is not supported.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// ParseFile decodes an uploaded roster file into rows keyed by column header.
// CSV and XLSX are supported; the first non-empty row is the header row.
func ParseFile(fileName string, payload []byte) ([]Row, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx":
		return parseExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte) ([]Row, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return recordsToRows(records)
}

func parseExcel(payload []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return recordsToRows(records)
}

// recordsToRows turns raw records into header-keyed rows. The first non-empty
// record is the header row; empty records are skipped; ragged records are
// padded so every header resolves.
func recordsToRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.New("no rows found in file")
	}

	var headers []string
	rows := []Row{}

	for _, record := range records {
		if isEmptyRecord(record) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(record))
			for i, cell := range record {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}

		record = padRecord(record, len(headers))
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			row[header] = record[i]
		}
		rows = append(rows, row)
	}

	if headers == nil {
		return nil, errors.New("header row could not be detected")
	}

	return rows, nil
}

func isEmptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRecord(record []string, length int) []string {
	if len(record) >= length {
		return record[:length]
	}
	padded := make([]string, length)
	copy(padded, record)
	return padded
}
