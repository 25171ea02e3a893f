package models

import "time"

// DayBucket holds the forecast samples that fall on one calendar date
type DayBucket struct {
	Date     string         // YYYY-MM-DD under the grouping time reference
	Location *time.Location // zone the date was derived in
	Samples  []ForecastSample
}

// Zone returns the bucket's zone, UTC if unset
func (d DayBucket) Zone() *time.Location {
	if d.Location == nil {
		return time.UTC
	}
	return d.Location
}

// First returns the earliest sample of the day
func (d DayBucket) First() (ForecastSample, bool) {
	if len(d.Samples) == 0 {
		return ForecastSample{}, false
	}
	return d.Samples[0], true
}

// Temperatures returns the temperatures of the day's samples in order
func (d DayBucket) Temperatures() []float64 {
	temps := make([]float64, len(d.Samples))
	for i, s := range d.Samples {
		temps[i] = s.TemperatureC
	}
	return temps
}

// DayBucketList is the day-grouped forecast, one bucket per date
type DayBucketList []DayBucket

// Samples flattens the list back into a single sample sequence
func (l DayBucketList) Samples() []ForecastSample {
	var out []ForecastSample
	for _, d := range l {
		out = append(out, d.Samples...)
	}
	return out
}
