package forecast

import "github.com/ngmaloney/weather-terminal/internal/models"

// NavState describes the selected day and which moves are possible
type NavState struct {
	Index      int
	Count      int
	CanRetreat bool
	CanAdvance bool
}

// IsToday reports whether the first day is selected
func (s NavState) IsToday() bool {
	return s.Count > 0 && s.Index == 0
}

// IsTomorrow reports whether the second day is selected
func (s NavState) IsTomorrow() bool {
	return s.Count > 1 && s.Index == 1
}

// Navigator holds the selected day index over a day bucket list.
// The index always stays within [0, len-1].
type Navigator struct {
	days  models.DayBucketList
	index int
}

// NewNavigator starts at the first day
func NewNavigator(days models.DayBucketList) *Navigator {
	return &Navigator{days: days}
}

// SelectToday moves to the first day
func (n *Navigator) SelectToday() bool {
	if len(n.days) == 0 {
		return false
	}
	return n.set(0)
}

// SelectTomorrow moves to the second day when there is one
func (n *Navigator) SelectTomorrow() bool {
	if len(n.days) < 2 {
		return false
	}
	return n.set(1)
}

// Advance moves one day forward unless already on the last day
func (n *Navigator) Advance() bool {
	if n.index >= len(n.days)-1 {
		return false
	}
	return n.set(n.index + 1)
}

// Retreat moves one day back unless already on the first day
func (n *Navigator) Retreat() bool {
	if n.index <= 0 {
		return false
	}
	return n.set(n.index - 1)
}

// Current returns the selected day, or false when there are no days
func (n *Navigator) Current() (models.DayBucket, bool) {
	if len(n.days) == 0 {
		return models.DayBucket{}, false
	}
	return n.days[n.index], true
}

// Index returns the selected day index
func (n *Navigator) Index() int {
	return n.index
}

// Len returns the number of days
func (n *Navigator) Len() int {
	return len(n.days)
}

// State returns the navigation affordances for the selected day
func (n *Navigator) State() NavState {
	count := len(n.days)
	return NavState{
		Index:      n.index,
		Count:      count,
		CanRetreat: count > 0 && n.index > 0,
		CanAdvance: count > 0 && n.index < count-1,
	}
}

func (n *Navigator) set(i int) bool {
	changed := n.index != i
	n.index = i
	return changed
}
