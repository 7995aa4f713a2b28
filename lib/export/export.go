package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"logarun-export/lib/scrapers/logarun"
	"logarun-export/lib/telemetry"
	"os"
	"time"

	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("logarun-export.lib.export")

// Document is the final export output, one entry per day in
// chronological order.
type Document []logarun.DayLog

// DayFetcher is the part of the logarun client the export loop needs.
type DayFetcher interface {
	FetchDay(ctx context.Context, username string, date time.Time) (logarun.DayLog, error)
}

type Options struct {
	Username string
	Range    DateRange
	// Delay is the pause between day requests, to stay friendly
	// with the site.
	Delay time.Duration
}

// Run walks the date range one day at a time, strictly sequentially,
// and aborts on the first failure. A partial export would silently
// masquerade as a complete backup, so there is no skip-and-continue.
func Run(ctx context.Context, fetcher DayFetcher, opts Options) (Document, error) {
	ctx, span := tracer.Start(ctx, "export:Run")
	defer span.End()

	days := opts.Range.Days()
	slog.InfoContext(
		ctx, "exporting logs",
		"start", opts.Range.Start.Format(DateFormat),
		"end", opts.Range.End.Format(DateFormat),
		"days", len(days),
	)

	var doc Document
	for i, date := range days {
		if i > 0 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}

		day, err := fetcher.FetchDay(ctx, opts.Username, date)
		if err != nil {
			span.SetStatus(codes.Error, "export aborted")
			return nil, err
		}
		doc = append(doc, day)
		slog.InfoContext(ctx, "exported log", "date", day.Date)
	}

	return doc, nil
}

// WriteFile serializes the document and writes it in one shot. Nothing
// is written until the whole range has been fetched and parsed.
func WriteFile(path string, doc Document) error {
	contents, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	contents = append(contents, '\n')
	return os.WriteFile(path, contents, 0644)
}

// DefaultFilename names the output after the range it covers.
func DefaultFilename(r DateRange) string {
	return fmt.Sprintf(
		"logarun_export_%s_%s.json",
		r.Start.Format("20060102"),
		r.End.Format("20060102"),
	)
}
