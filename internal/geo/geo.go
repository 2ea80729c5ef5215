// Package geo holds the pure spatial/temporal helpers used to frame
// catalog queries around a detection point.
package geo

import "time"

// Rectangle is an axis-aligned bounding box in geographic coordinates
// (degrees, lon/lat order on each axis).
type Rectangle struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BBox returns the rectangle as [min_lon, min_lat, max_lon, max_lat],
// the order the catalog API expects.
func (r Rectangle) BBox() []float64 {
	return []float64{r.MinLon, r.MinLat, r.MaxLon, r.MaxLat}
}

// Rect builds the bounding box around a point with a fixed buffer on each
// side. The buffer is in degrees and is not geodesically corrected; the
// default 0.02 deg is roughly 1 km at mid-latitudes.
func Rect(lon, lat, buffer float64) Rectangle {
	return Rectangle{
		MinLon: lon - buffer,
		MinLat: lat - buffer,
		MaxLon: lon + buffer,
		MaxLat: lat + buffer,
	}
}

// DateWindow is a half-open time interval [Start, End).
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns the single-calendar-day window [d, d+1day) for an
// acquisition date, truncated to midnight UTC.
func DayWindow(d time.Time) DateWindow {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return DateWindow{Start: start, End: start.AddDate(0, 0, 1)}
}
