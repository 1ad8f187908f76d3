package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// loadFeedsCSV reads the feed table from a CSV file. Numeric values that fail
// to parse are coerced to missing, never surfaced as errors.
func loadFeedsCSV(path string) ([]Feed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read feed table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("feed table %s is empty", path)
	}

	cols := headerIndex(records[0])
	feeds := make([]Feed, 0, len(records)-1)
	for _, record := range records[1:] {
		feeds = append(feeds, Feed{
			ID:        field(record, cols, "FEED_ID"),
			Theater:   field(record, cols, "THEATER"),
			Width:     intField(record, cols, "RES_W"),
			Height:    intField(record, cols, "RES_H"),
			FrameRate: floatField(record, cols, "FRRATE"),
			Codec:     field(record, cols, "CODEC"),
		})
	}
	return feeds, nil
}

// loadTableDefs reads the declared feed-table schema CSV.
func loadTableDefs(path string) ([]TableColumn, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table defs: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table defs: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table defs %s is empty", path)
	}

	cols := headerIndex(records[0])
	defs := make([]TableColumn, 0, len(records)-1)
	for _, record := range records[1:] {
		defs = append(defs, TableColumn{
			Header:        field(record, cols, "header"),
			Type:          field(record, cols, "type"),
			AllowedValues: field(record, cols, "allowed_values"),
			Description:   field(record, cols, "description"),
		})
	}
	return defs, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[strings.ToUpper(name)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func intField(record []string, cols map[string]int, name string) *int {
	raw := field(record, cols, name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		// Tolerate "1920.0" style exports.
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return nil
		}
		value = int(f)
	}
	if value < 0 {
		return nil
	}
	return &value
}

func floatField(record []string, cols map[string]int, name string) *float64 {
	raw := field(record, cols, name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
