package payperiod

import (
	"sort"
	"time"
)

// SelectWindow picks the periods to display for today. With a current period
// the window is that period plus every period ending on or before it, latest
// end first. Without one it is the past periods, latest start first. Ties
// keep input order and limit <= 0 disables truncation.
func SelectWindow(periods []PayPeriod, limit int, today time.Time) []PayPeriod {
	var current *PayPeriod
	for i := range periods {
		if periods[i].RelevanceOf(today) == RelevanceCurrent {
			current = &periods[i]
			break
		}
	}

	var window []PayPeriod
	if current != nil {
		for _, p := range periods {
			if p.ID == current.ID || !p.EndDate.After(current.EndDate) {
				window = append(window, p)
			}
		}
		sort.SliceStable(window, func(i, j int) bool {
			return window[i].EndDate.After(window[j].EndDate)
		})
	} else {
		for _, p := range periods {
			if p.RelevanceOf(today) == RelevancePast {
				window = append(window, p)
			}
		}
		sort.SliceStable(window, func(i, j int) bool {
			return window[i].StartDate.After(window[j].StartDate)
		})
	}

	if window == nil {
		window = []PayPeriod{}
	}
	if limit > 0 && len(window) > limit {
		window = window[:limit]
	}
	return window
}
