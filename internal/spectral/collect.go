package spectral

import (
	"context"
	"fmt"

	"github.com/RMahshie/scanlist/internal/device"
)

// WirelessPath is the RouterOS resource both the scan and apply commands target.
const WirelessPath = "/interface/wireless"

// A single spectral-scan request is limited to 200 buckets, so the band is
// walked in sub-ranges.
const (
	firstRangeStart = 4940
	firstRangeEnd   = 5100
	maxRangeStart   = 5940
	maxRangeEnd     = 6100

	// The sub-range that gets the shorter widening step.
	lastRangeStart = 5740
	lastRangeEnd   = 5940

	rangeStep     = 200
	lastRangeStep = 140

	bucketsPerRequest = "200"
)

// Options selects the wireless interface and scan dwell time.
type Options struct {
	Interface string
	Duration  string
}

// DefaultOptions scans and configures interface "0" with a 4 second dwell.
func DefaultOptions() Options {
	return Options{Interface: "0", Duration: "4"}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Interface == "" {
		o.Interface = def.Interface
	}
	if o.Duration == "" {
		o.Duration = def.Duration
	}
	return o
}

// ScanRange is one spectral-scan request span in MHz.
type ScanRange struct {
	Start int
	End   int
}

func (r ScanRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ScanRanges returns the request spans in the order they are issued.
func ScanRanges() []ScanRange {
	var ranges []ScanRange
	start, end := firstRangeStart, firstRangeEnd
	for start <= maxRangeStart && end <= maxRangeEnd {
		ranges = append(ranges, ScanRange{Start: start, End: end})
		if start == lastRangeStart && end == lastRangeEnd {
			start += rangeStep
			end += lastRangeStep
		} else {
			start += rangeStep
			end += rangeStep
		}
	}
	return ranges
}

// Collect runs one spectral scan per sub-range over a single session and
// gathers every reply row that carries a graph.
func Collect(ctx context.Context, opener device.Opener, opts Options) (*RawTable, error) {
	opts = opts.withDefaults()

	session, err := opener.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	table := NewRawTable()
	for _, r := range ScanRanges() {
		rows, err := session.Call(ctx, WirelessPath, "spectral-scan", map[string]string{
			"number":   opts.Interface,
			"range":    r.String(),
			"buckets":  bucketsPerRequest,
			"duration": opts.Duration,
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r, err)
		}

		for _, row := range rows {
			if _, ok := row["graph"]; ok {
				table.Append(row)
			}
		}
	}

	return table, nil
}
