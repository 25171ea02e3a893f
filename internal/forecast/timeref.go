package forecast

import (
	"fmt"
	"strings"
	"time"
)

// TimeReference decides which clock calendar dates are derived from
type TimeReference struct {
	name string
	loc  *time.Location
	city bool
}

// LocalTime uses the deployment's local timezone
func LocalTime() TimeReference {
	return TimeReference{name: "local", loc: time.Local}
}

// UTCTime uses UTC
func UTCTime() TimeReference {
	return TimeReference{name: "utc", loc: time.UTC}
}

// CityTime uses the UTC offset the upstream service reports for the city
func CityTime() TimeReference {
	return TimeReference{name: "city", city: true}
}

// ParseTimeReference accepts "local", "utc", "city" or an IANA zone name.
// An empty string means local.
func ParseTimeReference(s string) (TimeReference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return LocalTime(), nil
	case "utc":
		return UTCTime(), nil
	case "city":
		return CityTime(), nil
	}

	loc, err := time.LoadLocation(strings.TrimSpace(s))
	if err != nil {
		return TimeReference{}, fmt.Errorf("unknown time reference %q: %w", s, err)
	}
	return TimeReference{name: loc.String(), loc: loc}, nil
}

// Location resolves the reference for a searched city
func (r TimeReference) Location(cityOffsetSeconds int, cityName string) *time.Location {
	if r.city {
		return time.FixedZone(cityName, cityOffsetSeconds)
	}
	if r.loc == nil {
		return time.Local
	}
	return r.loc
}

// String returns the reference name
func (r TimeReference) String() string {
	if r.name == "" {
		return "local"
	}
	return r.name
}
