package logarun

// Activity holds the fields logarun renders for one logged activity
// (Distance, Time, Pace, Shoes, ...). The site does not document its
// field list, so it is kept as whatever the markup exposes rather than
// a fixed schema.
type Activity map[string]string

// DayLog is one day's training log entry.
type DayLog struct {
	Date       string              `json:"date"`
	Title      string              `json:"title"`
	Note       string              `json:"note"`
	Activities map[string]Activity `json:"activities"`
}
