package analysis

import (
	"encoding/json"
	"math"
)

// Float is a float64 that encodes NaN and infinities as JSON null.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// Report is the metrics document written as metrics.json. Field order is
// the serialized order.
type Report struct {
	SampleRate             float64 `json:"sampleRate"`
	Channels               int     `json:"channels"`
	NumSamples             int     `json:"numSamples"`
	DetectedLatencySamples int     `json:"detectedLatencySamples"`
	WetPeakDBFS            Float   `json:"wetPeakDbfs"`
	WetRMSDBFS             Float   `json:"wetRmsDbfs"`
	Correlation            Float   `json:"correlation"`
	HasNaNOrInfWet         bool    `json:"hasNaNOrInfWet"`
	HasNaNOrInfDelta       bool    `json:"hasNaNOrInfDelta"`
	DeltaPeakDBFS          *Float  `json:"deltaPeakDbfs,omitempty"`
	DeltaRMSDBFS           *Float  `json:"deltaRmsDbfs,omitempty"`
}

// Failed reports whether either analysed signal held NaN or Inf samples.
func (r Report) Failed() bool {
	return r.HasNaNOrInfWet || r.HasNaNOrInfDelta
}

// NullTested reports whether the report carries delta levels.
func (r Report) NullTested() bool {
	return r.DeltaPeakDBFS != nil
}

// MarshalIndent renders the report as indented JSON with a trailing newline.
func (r Report) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
