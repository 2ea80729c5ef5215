// Package loader reads the fire-detection table into memory.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emberlab/firefetch/internal/model"
)

// Column names required in the input CSV header. Extra columns are ignored.
const (
	colLatitude  = "latitude"
	colLongitude = "longitude"
	colAcqDate   = "acq_date"
)

// Accepted acquisition-date layouts; dates are normalized to a UTC
// calendar day regardless of input layout.
var dateLayouts = []string{"2006-01-02", "2006/01/02", time.RFC3339}

// Load reads fire events from a CSV file. Malformed rows are skipped with a
// per-row warning rather than aborting the load; a missing file or a header
// without the required columns is fatal.
func Load(path string) ([]model.FireEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	events, err := parse(csv.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("parse events file %s: %w", path, err)
	}
	return events, nil
}

func parse(r *csv.Reader) ([]model.FireEvent, error) {
	r.FieldsPerRecord = -1 // row width is validated against the header below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var events []model.FireEvent
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("skipping unreadable row", "line", line, "error", err)
			continue
		}

		event, err := parseRow(record, cols)
		if err != nil {
			slog.Warn("skipping malformed row", "line", line, "error", err)
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// columns holds the header positions of the required fields.
type columns struct {
	lat, lon, date int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{lat: -1, lon: -1, date: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case colLatitude:
			cols.lat = i
		case colLongitude:
			cols.lon = i
		case colAcqDate:
			cols.date = i
		}
	}
	if cols.lat < 0 || cols.lon < 0 || cols.date < 0 {
		return columns{}, fmt.Errorf("header must contain %q, %q, and %q columns", colLatitude, colLongitude, colAcqDate)
	}
	return cols, nil
}

func parseRow(record []string, cols columns) (model.FireEvent, error) {
	need := max(cols.lat, cols.lon, cols.date) + 1
	if len(record) < need {
		return model.FireEvent{}, fmt.Errorf("row has %d fields, need at least %d", len(record), need)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[cols.lat]), 64)
	if err != nil {
		return model.FireEvent{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[cols.lon]), 64)
	if err != nil {
		return model.FireEvent{}, fmt.Errorf("longitude: %w", err)
	}
	date, err := parseDate(strings.TrimSpace(record[cols.date]))
	if err != nil {
		return model.FireEvent{}, fmt.Errorf("acq_date: %w", err)
	}

	return model.FireEvent{Latitude: lat, Longitude: lon, AcqDate: date}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
