package spectral

import "gonum.org/v1/gonum/stat"

// Windows approximate 20/40 MHz channels: 41 consecutive 1 MHz rows, advancing
// 5 rows at a time, never past row 1180.
const (
	windowWidth    = 41
	windowStep     = 5
	windowMaxIndex = 1180
	windowBaseFreq = 4920
)

// Window is the averaged metrics of one 41-row span of the 1 MHz profile,
// keyed by Freq = 4920 + Start.
type Window struct {
	Freq int
	// Start and End are the half-open row range [Start, End) covered.
	Start int
	End   int

	DBM      float64
	DBMVar   float64
	Colon    float64
	ColonVar float64
	Dot      float64
	DotVar   float64
}

// AggregateWindows slides the window over profile. Windows that would extend
// beyond the profile are not emitted.
func AggregateWindows(profile []MHzRow) []Window {
	var windows []Window
	for start, end := 0, windowWidth; start <= windowMaxIndex && end <= windowMaxIndex && end <= len(profile); start, end = start+windowStep, end+windowStep {
		span := profile[start:end]
		windows = append(windows, Window{
			Freq:     windowBaseFreq + start,
			Start:    start,
			End:      end,
			DBM:      meanOf(span, func(r MHzRow) float64 { return r.DBM }),
			DBMVar:   meanOf(span, func(r MHzRow) float64 { return r.DBMVar }),
			Colon:    meanOf(span, func(r MHzRow) float64 { return r.Colon }),
			ColonVar: meanOf(span, func(r MHzRow) float64 { return r.ColonVar }),
			Dot:      meanOf(span, func(r MHzRow) float64 { return r.Dot }),
			DotVar:   meanOf(span, func(r MHzRow) float64 { return r.DotVar }),
		})
	}
	return windows
}

func meanOf(rows []MHzRow, field func(MHzRow) float64) float64 {
	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = field(r)
	}
	return stat.Mean(xs, nil)
}
