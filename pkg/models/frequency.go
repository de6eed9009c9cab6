package models

// WindowPoint represents the averaged metrics of one 40 MHz window
type WindowPoint struct {
	Frequency int     `json:"frequency" doc:"Window key in MHz"`
	DBM       float64 `json:"dbm" doc:"Mean power in dBm"`
	DBMVar    float64 `json:"dbm_var" doc:"Band-wide power variance"`
	Colon     float64 `json:"colon" doc:"Mean colon count of the scan graph"`
	ColonVar  float64 `json:"colon_var" doc:"Band-wide colon count variance"`
	Dot       float64 `json:"dot" doc:"Mean dot count of the scan graph"`
	DotVar    float64 `json:"dot_var" doc:"Band-wide dot count variance"`
}

// SegmentChoice represents the frequency selected for one 100 MHz segment
type SegmentChoice struct {
	Segment   string `json:"segment" example:"4920-5020" doc:"Segment bounds in MHz, exclusive"`
	Frequency int    `json:"frequency" example:"4925" doc:"Selected frequency in MHz"`
}
