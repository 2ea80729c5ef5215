// Package fetch runs the per-event imagery pipeline across a bounded
// worker pool: rectangle, day window, composite query, thumbnail URL,
// download, file write.
package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/emberlab/firefetch/internal/catalog"
	"github.com/emberlab/firefetch/internal/geo"
	"github.com/emberlab/firefetch/internal/model"
	"github.com/emberlab/firefetch/internal/observability"
)

// Querier is the imagery-catalog surface the dispatcher needs.
type Querier interface {
	QueryComposite(ctx context.Context, rect geo.Rectangle, window geo.DateWindow) (catalog.CompositeRef, error)
	ThumbnailURL(ctx context.Context, ref catalog.CompositeRef, rect geo.Rectangle) (string, error)
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// Store persists a downloaded thumbnail and returns its path.
type Store interface {
	Write(ctx context.Context, filename string, data io.Reader) (string, error)
}

// Options tune dispatcher behavior.
type Options struct {
	Workers          int
	BufferDeg        float64
	FilenameWithDate bool
}

// Dispatcher fans fire events out to a fixed pool of workers. Each event's
// pipeline is independent; one event's failure never aborts its siblings.
type Dispatcher struct {
	querier Querier
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    Options
}

// NewDispatcher creates a dispatcher. Zero option fields fall back to the
// defaults (5 workers, 0.02 deg buffer).
func NewDispatcher(querier Querier, store Store, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.BufferDeg <= 0 {
		opts.BufferDeg = 0.02
	}
	return &Dispatcher{
		querier: querier,
		store:   store,
		logger:  logger,
		metrics: metrics,
		opts:    opts,
	}
}

// Run processes all events and returns exactly one result per input event,
// in input order. Cancelling the context records the undispatched remainder
// as failed rather than blocking.
func (d *Dispatcher) Run(ctx context.Context, events []model.FireEvent) []model.DownloadResult {
	results := make([]model.DownloadResult, len(events))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < d.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = d.processEvent(ctx, events[i])
			}
		}()
	}

	for i := range events {
		select {
		case <-ctx.Done():
			results[i] = model.DownloadResult{
				Event:  events[i],
				Status: model.StatusFailed,
				Err:    ctx.Err(),
			}
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// processEvent runs one event's full pipeline. All per-event errors are
// converted into a terminal result here; nothing propagates.
func (d *Dispatcher) processEvent(ctx context.Context, event model.FireEvent) model.DownloadResult {
	start := time.Now()
	d.metrics.EventsTotal.Inc()
	defer func() {
		d.metrics.EventDuration.Observe(time.Since(start).Seconds())
	}()

	rect := geo.Rect(event.Longitude, event.Latitude, d.opts.BufferDeg)
	window := geo.DayWindow(event.AcqDate)

	ref, err := d.querier.QueryComposite(ctx, rect, window)
	if errors.Is(err, catalog.ErrEmptyCollection) {
		d.metrics.Skips.Inc()
		d.logger.Info("no imagery for event",
			"lat", event.Latitude, "lon", event.Longitude, "date", event.AcqDate.Format("2006-01-02"))
		return model.DownloadResult{Event: event, Status: model.StatusSkipped, Reason: "no imagery in window"}
	}
	if err != nil {
		return d.fail(event, "composite query failed", err)
	}

	url, err := d.querier.ThumbnailURL(ctx, ref, rect)
	if err != nil {
		return d.fail(event, "thumbnail request failed", err)
	}

	body, err := d.querier.Download(ctx, url)
	if err != nil {
		return d.fail(event, "thumbnail download failed", err)
	}
	defer body.Close()

	path, err := d.store.Write(ctx, event.FileName(d.opts.FilenameWithDate), body)
	if err != nil {
		return d.fail(event, "write failed", err)
	}

	d.metrics.Downloads.Inc()
	d.logger.Info("downloaded image",
		"path", path, "lat", event.Latitude, "lon", event.Longitude, "scenes", ref.ImageCount)
	return model.DownloadResult{Event: event, Status: model.StatusOK, FilePath: path}
}

func (d *Dispatcher) fail(event model.FireEvent, msg string, err error) model.DownloadResult {
	d.metrics.Failures.Inc()
	d.logger.Warn("failed to download image for event",
		"lat", event.Latitude, "lon", event.Longitude, "reason", msg, "error", err)
	return model.DownloadResult{Event: event, Status: model.StatusFailed, Err: err}
}
