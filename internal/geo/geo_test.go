package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRect(t *testing.T) {
	tests := []struct {
		name             string
		lon, lat, buffer float64
		want             Rectangle
	}{
		{
			name: "los angeles default buffer",
			lon:  -118.25, lat: 34.05, buffer: 0.02,
			want: Rectangle{MinLon: -118.27, MinLat: 34.03, MaxLon: -118.23, MaxLat: 34.07},
		},
		{
			name: "origin",
			lon:  0, lat: 0, buffer: 0.02,
			want: Rectangle{MinLon: -0.02, MinLat: -0.02, MaxLon: 0.02, MaxLat: 0.02},
		},
		{
			name: "southern hemisphere",
			lon:  151.2, lat: -33.87, buffer: 0.05,
			want: Rectangle{MinLon: 151.15, MinLat: -33.92, MaxLon: 151.25, MaxLat: -33.82},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rect(tt.lon, tt.lat, tt.buffer)
			assert.InDelta(t, tt.want.MinLon, got.MinLon, 1e-9)
			assert.InDelta(t, tt.want.MinLat, got.MinLat, 1e-9)
			assert.InDelta(t, tt.want.MaxLon, got.MaxLon, 1e-9)
			assert.InDelta(t, tt.want.MaxLat, got.MaxLat, 1e-9)
			assert.Less(t, got.MinLon, got.MaxLon)
			assert.Less(t, got.MinLat, got.MaxLat)
		})
	}
}

func TestRectangle_BBox(t *testing.T) {
	r := Rectangle{MinLon: 1, MinLat: 2, MaxLon: 3, MaxLat: 4}
	assert.Equal(t, []float64{1, 2, 3, 4}, r.BBox())
}

func TestDayWindow(t *testing.T) {
	d := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC)
	w := DayWindow(d)

	assert.Equal(t, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2023, 8, 2, 0, 0, 0, 0, time.UTC), w.End)
	assert.True(t, w.Start.Before(w.End))
}

func TestDayWindow_TruncatesTimeOfDay(t *testing.T) {
	d := time.Date(2023, 12, 31, 18, 45, 12, 0, time.UTC)
	w := DayWindow(d)

	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.End)
	assert.Equal(t, 24*time.Hour, w.End.Sub(w.Start))
}
