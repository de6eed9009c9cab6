package spectral

// Analysis holds every intermediate table of one selection run.
type Analysis struct {
	Samples []Sample
	Profile []MHzRow
	Windows []Window
	Ranked  []int
	Plan    Plan
}

// ScanList returns the plan's frequencies.
func (a *Analysis) ScanList() ScanList {
	return a.Plan.ScanList()
}

// Analyze runs normalization through band selection on a collected table.
func Analyze(raw *RawTable) (*Analysis, error) {
	samples, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	profile := AggregateMHz(samples)
	windows := AggregateWindows(profile)
	ranked := Rank(windows)

	return &Analysis{
		Samples: samples,
		Profile: profile,
		Windows: windows,
		Ranked:  ranked,
		Plan:    SelectBands(ranked),
	}, nil
}
