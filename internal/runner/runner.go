// Package runner drives the whole pipeline: per receiver it computes the
// circuit midpoint, builds the three day series, resolves shading, and
// renders the chart. Receivers are isolated from each other; one failure
// never blocks or corrupts the rest of the run.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/grey/greyline/internal/chart"
	"github.com/grey/greyline/internal/config"
	"github.com/grey/greyline/internal/ephemeris"
	"github.com/grey/greyline/internal/fill"
	"github.com/grey/greyline/internal/geodesy"
	"github.com/grey/greyline/internal/metrics"
	"github.com/grey/greyline/internal/segment"
	"github.com/grey/greyline/internal/series"
)

// Runner executes one configured run.
type Runner struct {
	cfg    *config.Config
	src    ephemeris.Source
	render *chart.Renderer
	logger *slog.Logger
}

// New wires a runner from its collaborators.
func New(cfg *config.Config, src ephemeris.Source, render *chart.Renderer, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		src:    src,
		render: render,
		logger: logger,
	}
}

type receiverResult struct {
	name string
	path string
	err  error
}

// Run processes every configured receiver, bounded by the configured
// concurrency, and returns an error if any receiver failed. Results are
// reported in configuration order regardless of completion order.
func (r *Runner) Run(ctx context.Context) error {
	dates := r.cfg.DateList()
	tx := r.cfg.TransmitterLocation()
	opts := segment.Options{
		Zone:          r.cfg.Zone(),
		RoundToMinute: r.cfg.Output.RoundToMinute,
	}

	r.logger.Info("starting run",
		"transmitter", tx.Name,
		"receivers", len(r.cfg.Receivers),
		"days", len(dates),
		"zone", r.cfg.Timezone,
		"backend", r.cfg.Ephemeris.Backend,
	)

	results := make([]receiverResult, len(r.cfg.Receivers))
	sem := make(chan struct{}, r.cfg.Concurrency)
	var wg sync.WaitGroup
	var readyOnce sync.Once

	for i, rx := range r.cfg.Receivers {
		wg.Add(1)
		go func(idx int, rx config.Receiver) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = receiverResult{name: rx.Name, err: ctx.Err()}
				return
			}

			path, err := r.processReceiver(ctx, tx, rx, dates, opts)
			results[idx] = receiverResult{name: rx.Name, path: path, err: err}
			readyOnce.Do(metrics.MarkReady)
		}(i, rx)
	}

	wg.Wait()

	var failed int
	for _, res := range results {
		if res.err != nil {
			failed++
			metrics.RecordReceiverFailed()
			r.logger.Error("receiver failed", "receiver", res.name, "error", res.err)
			continue
		}
		r.logger.Info("chart written", "receiver", res.name, "path", res.path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d receivers failed", failed, len(results))
	}
	return nil
}

// processReceiver runs the full pipeline for one receiver and returns the
// written chart path.
func (r *Runner) processReceiver(ctx context.Context, tx geodesy.Location, rx config.Receiver, dates []time.Time, opts segment.Options) (string, error) {
	rxLoc := rx.Location()
	r.logger.Debug("processing receiver", "receiver", rxLoc.Name)

	mid, err := geodesy.Midpoint(tx, rxLoc)
	if err != nil {
		return "", fmt.Errorf("midpoint: %w", err)
	}

	txSeries, err := series.Build(ctx, r.src, tx, dates, opts)
	if err != nil {
		return "", fmt.Errorf("transmitter series: %w", err)
	}
	rxSeries, err := series.Build(ctx, r.src, rxLoc, dates, opts)
	if err != nil {
		return "", fmt.Errorf("receiver series: %w", err)
	}
	midSeries, err := series.Build(ctx, r.src, mid, dates, opts)
	if err != nil {
		return "", fmt.Errorf("midpoint series: %w", err)
	}

	txFill := fill.Resolve(txSeries.Sunrise, txSeries.Sunset)
	rxFill := fill.Resolve(rxSeries.Sunrise, rxSeries.Sunset)
	r.logger.Debug("fill polarity resolved",
		"receiver", rxLoc.Name,
		"tx_polarity", txFill.Polarity.String(),
		"rx_polarity", rxFill.Polarity.String(),
		"repairs", txSeries.Repairs+rxSeries.Repairs+midSeries.Repairs,
	)

	path, err := r.render.Render(chart.Input{
		Year:        r.cfg.StartYear(),
		Transmitter: txSeries,
		Receiver:    rxSeries,
		Midpoint:    midSeries,
		TxFill:      txFill,
		RxFill:      rxFill,
	})
	if err != nil {
		metrics.RecordChartFailed()
		return "", fmt.Errorf("render: %w", err)
	}
	metrics.RecordChartRendered()

	return path, nil
}
