package logarun

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"logarun-export/lib/htmlutil"
	"regexp"
	"slices"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

const DateFormat = "2006-01-02"

// activity blocks are asp.net controls with generated ids
var activityBlockRegex = regexp.MustCompile(`ctl00_Content_c_applications_act[0-9+]_c_app$`)

// unit spans carry no label on logarun, so they are recognized by value
var distanceUnits = []string{"Mile(s)", "Kilometer(s)", "Yard(s)"}

// FetchDay downloads and parses the log page for a single day.
func (c *Client) FetchDay(ctx context.Context, username string, date time.Time) (DayLog, error) {
	ctx, span := tracer.Start(ctx, "client:FetchDay")
	defer span.End()

	day := date.Format(DateFormat)
	slog.DebugContext(ctx, "fetching day", "username", username, "date", day)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/calendars/%s/%s", username, date.Format("2006/01/02")))
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch day page")
		return DayLog{}, fmt.Errorf("%w: %s: %s", ErrFetch, day, err)
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "day page returned an error status")
		return DayLog{}, fmt.Errorf("%w: %s: status %d", ErrFetch, day, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse day page html")
		return DayLog{}, fmt.Errorf("%w: %s: %s", ErrMarkup, day, err)
	}

	log, err := parseDay(doc)
	if err != nil {
		span.SetStatus(codes.Error, "unexpected day page markup")
		return DayLog{}, fmt.Errorf("%s: %w", day, err)
	}
	log.Date = day
	return log, nil
}

func text(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	return htmlutil.CleanText(htmlutil.GetText(sel.Nodes[0]))
}

func parseDay(doc *goquery.Document) (DayLog, error) {
	title := doc.Find("tr.editTblDayTitle")
	if title.Length() == 0 {
		return DayLog{}, fmt.Errorf("%w: missing day title row", ErrMarkup)
	}
	note := doc.Find("p#ctl00_Content_c_note_c_note")
	if note.Length() == 0 {
		return DayLog{}, fmt.Errorf("%w: missing day note", ErrMarkup)
	}

	activities := map[string]Activity{}
	var parseErr error

	doc.Find("div[id]").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		if !activityBlockRegex.MatchString(block.AttrOr("id", "")) {
			return true
		}

		name := text(block.Find("div.title"))
		if name == "" {
			parseErr = fmt.Errorf("%w: activity block without a title", ErrMarkup)
			return false
		}

		fields := activities[name]
		if fields == nil {
			fields = Activity{}
			activities[name] = fields
		}

		block.Find("span.field").EachWithBreak(func(_ int, field *goquery.Selection) bool {
			value := text(field.Find("span").First())
			label := text(field.Find("label").First())
			if label == "" {
				if !slices.Contains(distanceUnits, value) {
					parseErr = fmt.Errorf("%w: unlabeled field with value %q", ErrMarkup, value)
					return false
				}
				label = "Distance Units"
			}
			fields[label] = value
			return true
		})
		return parseErr == nil
	})
	if parseErr != nil {
		return DayLog{}, parseErr
	}

	return DayLog{
		Title:      text(title),
		Note:       text(note),
		Activities: activities,
	}, nil
}
