package spectral

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// The band is cut into 100 MHz segments from 4920-5020 up to 6020-6120.
const (
	segmentFirstLower = 4920
	segmentFirstUpper = 5020
	segmentMaxLower   = 6020
	segmentMaxUpper   = 6120
	segmentWidth      = 100
)

// rankKey orders windows: quieter first, then steadier, then simpler graphs.
func (w Window) rankKey() [6]float64 {
	return [6]float64{w.DBM, w.DBMVar, w.Colon, w.ColonVar, w.Dot, w.DotVar}
}

func compareWindows(a, b Window) int {
	ka, kb := a.rankKey(), b.rankKey()
	for i := range ka {
		if c := cmp.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Rank returns the window frequencies from best to worst. Equal keys keep
// their window order.
func Rank(windows []Window) []int {
	sorted := slices.Clone(windows)
	slices.SortStableFunc(sorted, compareWindows)

	ranked := make([]int, len(sorted))
	for i, w := range sorted {
		ranked[i] = w.Freq
	}
	return ranked
}

// Segment is an open frequency interval (Lower, Upper).
type Segment struct {
	Lower int
	Upper int
}

// Label formats the segment as "lower-upper".
func (s Segment) Label() string {
	return fmt.Sprintf("%d-%d", s.Lower, s.Upper)
}

// Contains reports whether freq lies strictly inside the segment.
func (s Segment) Contains(freq int) bool {
	return s.Lower < freq && freq < s.Upper
}

// Segments returns the band segments in ascending order.
func Segments() []Segment {
	var segments []Segment
	for lower, upper := segmentFirstLower, segmentFirstUpper; lower <= segmentMaxLower && upper <= segmentMaxUpper; lower, upper = lower+segmentWidth, upper+segmentWidth {
		segments = append(segments, Segment{Lower: lower, Upper: upper})
	}
	return segments
}

// Pick is the frequency chosen for one segment.
type Pick struct {
	Segment   Segment
	Frequency int
}

// Plan lists one pick per populated segment, in segment order.
type Plan []Pick

// SelectBands picks, for every segment, the best-ranked frequency inside it.
// Segments without a candidate are left out.
func SelectBands(ranked []int) Plan {
	var plan Plan
	for _, seg := range Segments() {
		for _, freq := range ranked {
			if seg.Contains(freq) {
				plan = append(plan, Pick{Segment: seg, Frequency: freq})
				break
			}
		}
	}
	return plan
}

// ScanList returns the picked frequencies in segment order.
func (p Plan) ScanList() ScanList {
	list := make(ScanList, len(p))
	for i, pick := range p {
		list[i] = pick.Frequency
	}
	return list
}

// ScanList is the device scan-list value.
type ScanList []int

// String joins the frequencies with commas, e.g. "4925,5130,5330".
func (l ScanList) String() string {
	parts := make([]string, len(l))
	for i, f := range l {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}
