package spectral

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MHzRow holds the per-frequency means of one 1 MHz bucket. The variance
// fields are band-wide and identical on every row.
type MHzRow struct {
	Freq     int
	DBM      float64
	Colon    float64
	Dot      float64
	DBMVar   float64
	ColonVar float64
	DotVar   float64
}

// AggregateMHz groups samples by frequency, averages each group, then attaches
// the variance of those averages across the whole band.
func AggregateMHz(samples []Sample) []MHzRow {
	type group struct {
		dbm, colon, dot []float64
	}

	groups := make(map[int]*group)
	for _, s := range samples {
		g, ok := groups[s.Freq]
		if !ok {
			g = &group{}
			groups[s.Freq] = g
		}
		g.dbm = append(g.dbm, float64(s.DBM))
		g.colon = append(g.colon, float64(s.Colon))
		g.dot = append(g.dot, float64(s.Dot))
	}

	freqs := make([]int, 0, len(groups))
	for f := range groups {
		freqs = append(freqs, f)
	}
	sort.Ints(freqs)

	rows := make([]MHzRow, len(freqs))
	dbm := make([]float64, len(freqs))
	colon := make([]float64, len(freqs))
	dot := make([]float64, len(freqs))
	for i, f := range freqs {
		g := groups[f]
		dbm[i] = stat.Mean(g.dbm, nil)
		colon[i] = stat.Mean(g.colon, nil)
		dot[i] = stat.Mean(g.dot, nil)
		rows[i] = MHzRow{Freq: f, DBM: dbm[i], Colon: colon[i], Dot: dot[i]}
	}

	dbmVar, colonVar, dotVar := bandVariance(dbm), bandVariance(colon), bandVariance(dot)
	for i := range rows {
		rows[i].DBMVar = dbmVar
		rows[i].ColonVar = colonVar
		rows[i].DotVar = dotVar
	}
	return rows
}

// bandVariance is the unbiased sample variance; it is 0 below two values.
func bandVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(xs, nil)
}
