package logarun

import (
	"logarun-export/lib/restyutil"
	"logarun-export/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

var tracer = telemetry.Tracer("logarun-export.lib.scrapers.logarun")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput routes raw http message dumps from clients
// created afterwards. Call before NewClient.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

func restyutilInstrument(client *resty.Client) {
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)
}
