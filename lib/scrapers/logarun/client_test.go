package logarun

import (
	"context"
	"logarun-export/lib/telemetry"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/logon_ok.html
var logonOkPage []byte

//go:embed testdata/logon_rejected.html
var logonRejectedPage []byte

//go:embed testdata/day_run.html
var dayRunPage []byte

//go:embed testdata/day_crosstrain.html
var dayCrosstrainPage []byte

//go:embed testdata/day_off.html
var dayOffPage []byte

//go:embed testdata/day_malformed.html
var dayMalformedPage []byte

const testPassword = "hunter2"

// newFakeSite serves a minimal logarun.com: a logon form endpoint and
// static per-day calendar pages.
func newFakeSite(days map[string][]byte) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/logon.aspx", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Write(logonRejectedPage)
			return
		}
		r.ParseForm()
		if r.PostFormValue("Password") != testPassword || r.PostFormValue("LoginNow") != "Login" {
			w.Write(logonRejectedPage)
			return
		}
		w.Write(logonOkPage)
	})
	mux.HandleFunc("/calendars/", func(w http.ResponseWriter, r *http.Request) {
		page, ok := days[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(page)
	})
	return httptest.NewServer(mux)
}

func newTestClient(t testing.TB, server *httptest.Server) *Client {
	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	return client
}

func TestLoginAndFetchDay(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/logarun")
	defer cleanup()

	server := newFakeSite(map[string][]byte{
		"/calendars/testaccount1/2017/07/15": dayRunPage,
	})
	defer server.Close()

	ctx := context.Background()
	client := newTestClient(t, server)

	err := client.Login(ctx, "testaccount1", testPassword)
	require.NoError(t, err)

	day, err := client.FetchDay(ctx, "testaccount1", time.Date(2017, 7, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	expected := DayLog{
		Date:  "2017-07-15",
		Title: "Saturday Run",
		Note:  "Easy run",
		Activities: map[string]Activity{
			"Run": {
				"Distance":       "8.00",
				"Distance Units": "Mile(s)",
				"Time":           "01:00:01",
				"Pace":           "00:07:30.12 /mile",
				"Avg HR":         "0.0",
				"Shoes":          "",
			},
			"Health": {
				"Morning Pulse": "0 bpm",
				"Body Fat %":    "0.00",
				"Sleep Hours":   "8.00 hrs.",
				"Weight":        "0.00 lbs.",
			},
		},
	}
	if diff := cmp.Diff(expected, day); diff != "" {
		t.Fatalf("day log mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchDayWithoutDistanceFields(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/logarun")
	defer cleanup()

	server := newFakeSite(map[string][]byte{
		"/calendars/testaccount1/2017/07/13": dayCrosstrainPage,
		"/calendars/testaccount1/2017/07/14": dayOffPage,
	})
	defer server.Close()

	ctx := context.Background()
	client := newTestClient(t, server)

	day, err := client.FetchDay(ctx, "testaccount1", time.Date(2017, 7, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "Cross Train", day.Title)
	require.Equal(t, "Biked and swam.", day.Note)
	require.Equal(t, "Yard(s)", day.Activities["Swim"]["Distance Units"])
	require.Equal(t, "00:30:00", day.Activities["Bike"]["Time"])

	day, err = client.FetchDay(ctx, "testaccount1", time.Date(2017, 7, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "Off", day.Title)
	require.Len(t, day.Activities, 1)
	require.Equal(t, "8.00 hrs.", day.Activities["Health"]["Sleep Hours"])
}

func TestLoginRejected(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/logarun")
	defer cleanup()

	server := newFakeSite(nil)
	defer server.Close()

	client := newTestClient(t, server)
	err := client.Login(context.Background(), "testaccount1", "wrong")
	require.ErrorIs(t, err, ErrLoginFailed)
}

func TestFetchDayMalformedPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/logarun")
	defer cleanup()

	server := newFakeSite(map[string][]byte{
		"/calendars/testaccount1/2017/07/14": dayMalformedPage,
	})
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.FetchDay(context.Background(), "testaccount1", time.Date(2017, 7, 14, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrMarkup)
	require.ErrorContains(t, err, "2017-07-14")
}

func TestFetchDayMissingPage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/logarun")
	defer cleanup()

	server := newFakeSite(nil)
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.FetchDay(context.Background(), "testaccount1", time.Date(2017, 7, 14, 0, 0, 0, 0, time.UTC))
	require.ErrorIs(t, err, ErrFetch)
}

func parseDocForTest(t testing.TB, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestParseDayMergesRepeatedActivities(t *testing.T) {
	doc := parseDocForTest(t, `<html><body>
<table><tr class="editTblDayTitle"><td>Doubles</td></tr></table>
<p id="ctl00_Content_c_note_c_note">AM and PM runs</p>
<div id="ctl00_Content_c_applications_act0_c_app">
    <div class="title">Run</div>
    <span class="field"><label>Distance</label><span>4.00</span></span>
</div>
<div id="ctl00_Content_c_applications_act1_c_app">
    <div class="title">Run</div>
    <span class="field"><label>Time</label><span>00:30:00</span></span>
</div>
</body></html>`)

	day, err := parseDay(doc)
	require.NoError(t, err)
	require.Len(t, day.Activities, 1)
	require.Equal(t, "4.00", day.Activities["Run"]["Distance"])
	require.Equal(t, "00:30:00", day.Activities["Run"]["Time"])
}

func TestParseDayRejectsUnlabeledField(t *testing.T) {
	doc := parseDocForTest(t, `<html><body>
<table><tr class="editTblDayTitle"><td>Run</td></tr></table>
<p id="ctl00_Content_c_note_c_note">No Note</p>
<div id="ctl00_Content_c_applications_act0_c_app">
    <div class="title">Run</div>
    <span class="field"><span>definitely not a unit</span></span>
</div>
</body></html>`)

	_, err := parseDay(doc)
	require.ErrorIs(t, err, ErrMarkup)
}
