package spectral

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	windows := []Window{
		{Freq: 4920, DBM: -95},
		{Freq: 4925, DBM: -100, DBMVar: 2},
		{Freq: 4930, DBM: -100, DBMVar: 1, Colon: 3},
		{Freq: 4935, DBM: -100, DBMVar: 1, Colon: 2, Dot: 9},
		{Freq: 4940, DBM: -100, DBMVar: 1, Colon: 2, Dot: 1},
		{Freq: 4945, DBM: -100, DBMVar: 1, Colon: 2, Dot: 1},
	}

	ranked := Rank(windows)

	// 4940 and 4945 tie on every key and keep their input order.
	assert.Equal(t, []int{4940, 4945, 4935, 4930, 4925, 4920}, ranked)
}

func TestRankProperties(t *testing.T) {
	windows := AggregateWindows(noisyProfile(600))
	require.NotEmpty(t, windows)

	ranked := Rank(windows)

	keys := make([]int, len(windows))
	for i, w := range windows {
		keys[i] = w.Freq
	}
	got := append([]int(nil), ranked...)
	sort.Ints(got)
	assert.Equal(t, keys, got, "ranked list must be a permutation of window keys")

	byFreq := make(map[int]Window, len(windows))
	for _, w := range windows {
		byFreq[w.Freq] = w
	}
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, compareWindows(byFreq[ranked[i-1]], byFreq[ranked[i]]), 0)
	}
}

func TestRankDoesNotReorderInput(t *testing.T) {
	windows := []Window{{Freq: 4925, DBM: -90}, {Freq: 4920, DBM: -99}}
	Rank(windows)
	assert.Equal(t, 4925, windows[0].Freq)
}

func TestSegments(t *testing.T) {
	segments := Segments()

	require.Len(t, segments, 12)
	assert.Equal(t, Segment{4920, 5020}, segments[0])
	assert.Equal(t, Segment{6020, 6120}, segments[11])
	assert.Equal(t, "5120-5220", segments[2].Label())

	assert.True(t, segments[0].Contains(4925))
	assert.False(t, segments[0].Contains(4920))
	assert.False(t, segments[0].Contains(5020))
	assert.False(t, segments[1].Contains(5020))
}

func TestSelectBands(t *testing.T) {
	plan := SelectBands([]int{4925, 5130, 5330})

	labels := make(map[string]int, len(plan))
	for _, p := range plan {
		labels[p.Segment.Label()] = p.Frequency
	}
	assert.Equal(t, map[string]int{
		"4920-5020": 4925,
		"5120-5220": 5130,
		"5320-5420": 5330,
	}, labels)
	assert.Equal(t, ScanList{4925, 5130, 5330}, plan.ScanList())
	assert.Equal(t, "4925,5130,5330", plan.ScanList().String())
}

func TestSelectBandsRankOrderWins(t *testing.T) {
	// 4990 ranks ahead of 4925, so it wins the first segment even though it
	// is the higher frequency.
	plan := SelectBands([]int{5020, 4990, 5025, 4925, 5030})

	require.Len(t, plan, 2)
	assert.Equal(t, 4990, plan[0].Frequency)
	assert.Equal(t, 5025, plan[1].Frequency)
}

func TestSelectBandsInvariants(t *testing.T) {
	ranked := Rank(AggregateWindows(noisyProfile(1190)))
	plan := SelectBands(ranked)

	seen := make(map[Segment]bool)
	for i, p := range plan {
		assert.False(t, seen[p.Segment], "segment %s picked twice", p.Segment.Label())
		seen[p.Segment] = true
		assert.True(t, p.Segment.Contains(p.Frequency))
		if i > 0 {
			assert.Less(t, plan[i-1].Segment.Lower, p.Segment.Lower)
		}
	}

	again := SelectBands(Rank(AggregateWindows(noisyProfile(1190))))
	assert.Equal(t, plan.ScanList(), again.ScanList())
}

func TestSelectBandsEmpty(t *testing.T) {
	plan := SelectBands(nil)
	assert.Empty(t, plan)
	assert.Equal(t, "", plan.ScanList().String())
}

// noisyProfile is a deterministic, uneven profile for property checks.
func noisyProfile(n int) []MHzRow {
	rows := make([]MHzRow, n)
	for i := range rows {
		rows[i] = MHzRow{
			Freq:  4920 + i,
			DBM:   -100 + float64((i*37)%11),
			Colon: float64((i * 13) % 4),
			Dot:   1 + float64((i*7)%3),
		}
	}
	return rows
}
