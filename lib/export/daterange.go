package export

import (
	"fmt"
	"time"
)

const DateFormat = "2006-01-02"

var ErrBadRange = fmt.Errorf("invalid date range")

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrBadRange, start)
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrBadRange, end)
	}
	return NewDateRange(s, e)
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = midnight(start)
	end = midnight(end)
	if end.Before(start) {
		return DateRange{}, fmt.Errorf(
			"%w: start %s is after end %s",
			ErrBadRange, start.Format(DateFormat), end.Format(DateFormat),
		)
	}
	return DateRange{Start: start, End: end}, nil
}

// truncate to midnight UTC so Days() steps over whole days regardless
// of where the input timestamps came from
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days lists every day in the range in chronological order,
// always end - start + 1 of them.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
