package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FireEvent is a single fire detection from the input table.
// Immutable once loaded; one instance per input row.
type FireEvent struct {
	Latitude  float64
	Longitude float64
	AcqDate   time.Time
}

// FileName returns the output filename for the event's thumbnail.
// The default scheme is "{lat}_{lon}.png"; two detections at the same
// coordinates overwrite each other unless withDate is set, which appends
// the acquisition date to disambiguate.
func (e FireEvent) FileName(withDate bool) string {
	lat := strconv.FormatFloat(e.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(e.Longitude, 'f', -1, 64)
	if withDate {
		return fmt.Sprintf("%s_%s_%s.png", lat, lon, e.AcqDate.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s_%s.png", lat, lon)
}

// RunID represents a UUIDv7 run identifier from orchestration.
type RunID string

// Validate checks that the RunID is a valid UUIDv7.
func (r RunID) Validate() error {
	if r == "" {
		return fmt.Errorf("run-id cannot be empty")
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return fmt.Errorf("run-id must be a valid UUID: %w", err)
	}
	if id.Version() != uuid.Version(7) {
		return fmt.Errorf("run-id must be a UUIDv7, got v%d", id.Version())
	}
	return nil
}

// String returns the run ID as a string.
func (r RunID) String() string {
	return string(r)
}

// NewRunID generates a fresh UUIDv7 run identifier for runs started
// outside an orchestrator.
func NewRunID() RunID {
	return RunID(uuid.Must(uuid.NewV7()).String())
}

// Status is the terminal outcome of one event's pipeline.
type Status string

const (
	StatusOK      Status = "ok"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// DownloadResult records the outcome of one FireEvent's pipeline.
// Exactly one is produced per input event.
type DownloadResult struct {
	Event    FireEvent
	FilePath string // set when Status is ok
	Status   Status
	Reason   string // set when Status is skipped
	Err      error  // set when Status is failed
}
