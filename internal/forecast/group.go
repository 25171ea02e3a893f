// Package forecast groups forecast samples into calendar days and tracks
// which day is selected.
package forecast

import (
	"time"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// DateLayout is the key format for a day bucket
const DateLayout = "2006-01-02"

// Group partitions samples into day buckets by calendar date in loc.
// Buckets keep the order in which their date was first seen and samples keep
// their input order, so concatenating the buckets reproduces the input.
func Group(samples []models.ForecastSample, loc *time.Location) models.DayBucketList {
	if loc == nil {
		loc = time.UTC
	}

	days := make(models.DayBucketList, 0)
	index := make(map[string]int)

	for _, s := range samples {
		date := time.Unix(s.Timestamp, 0).In(loc).Format(DateLayout)
		i, ok := index[date]
		if !ok {
			i = len(days)
			index[date] = i
			days = append(days, models.DayBucket{Date: date, Location: loc})
		}
		days[i].Samples = append(days[i].Samples, s)
	}

	return days
}
