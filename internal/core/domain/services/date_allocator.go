package services

import (
	"errors"
	"fmt"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
)

// ErrUnsupportedStayConfiguration is returned when a stay on a found route
// cannot be given a handover range, e.g. a one-time stay without dates.
var ErrUnsupportedStayConfiguration = errors.New("unsupported stay configuration")

// DateRangeAllocator proposes a handover date range for every stay of a route.
//
// One-time stays with fixed dates are anchors and keep their own range.
// Runs of recurring stays between anchors share the time between them in
// proportion to their frequency weight (daily 1, weekly 7, sometimes 28);
// neighbouring ranges overlap up to the midpoints of the adjacent slices.
type DateRangeAllocator struct{}

func NewDateRangeAllocator() DateRangeAllocator {
	return DateRangeAllocator{}
}

// Allocate returns one range per stay, in route order. Ranges of recurring
// stays never start before day.
func (a DateRangeAllocator) Allocate(path []*stay.Stay, day kernel.Date) ([]kernel.DateRange, error) {
	ranges := make([]kernel.DateRange, 0, len(path))
	lower := day

	for i := 0; i < len(path); {
		if fixed, ok := path[i].FixedRange(); ok {
			ranges = append(ranges, fixed)
			lower = fixed.Midpoint()
			i++
			continue
		}
		if path[i].IsOneTime() {
			return nil, fmt.Errorf("%w: one-time stay %s without start and end", ErrUnsupportedStayConfiguration, path[i].ID())
		}

		j := i
		for j < len(path) && !path[j].IsOneTime() {
			j++
		}
		run := path[i:j]

		var upper kernel.Date
		if j < len(path) {
			next, ok := path[j].FixedRange()
			if !ok {
				return nil, fmt.Errorf("%w: one-time stay %s without start and end", ErrUnsupportedStayConfiguration, path[j].ID())
			}
			upper = next.Midpoint()
		} else {
			total, err := totalWeight(run)
			if err != nil {
				return nil, err
			}
			upper = lower.AddDays(total)
		}

		bounded, err := a.AllocateBounded(run, lower, upper)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, bounded...)
		i = j
	}

	return ranges, nil
}

// AllocateBounded spreads recurring stays over [lower, upper]. An upper
// bound before lower is clamped to lower.
func (a DateRangeAllocator) AllocateBounded(stays []*stay.Stay, lower, upper kernel.Date) ([]kernel.DateRange, error) {
	if len(stays) == 0 {
		return nil, nil
	}
	total, err := totalWeight(stays)
	if err != nil {
		return nil, err
	}
	if upper.Before(lower) {
		upper = lower
	}
	if len(stays) == 1 {
		return []kernel.DateRange{kernel.MustNewDateRange(lower, upper)}, nil
	}

	days := lower.DaysUntil(upper)
	slices := make([]kernel.DateRange, len(stays))
	cursor := lower
	for i, s := range stays {
		w, _ := frequencyWeight(s.Frequency())
		end := cursor.AddDays(days * w / total)
		if i == len(stays)-1 {
			end = upper
		}
		slices[i] = kernel.MustNewDateRange(cursor, end)
		cursor = end
	}

	ranges := make([]kernel.DateRange, len(stays))
	for i := range slices {
		start := slices[i].Start()
		if i > 0 {
			start = slices[i-1].Midpoint()
		}
		end := slices[i].End()
		if i < len(slices)-1 {
			end = slices[i+1].Midpoint()
		}
		ranges[i] = kernel.MustNewDateRange(start, end)
	}
	return ranges, nil
}

func totalWeight(stays []*stay.Stay) (int, error) {
	total := 0
	for _, s := range stays {
		w, err := frequencyWeight(s.Frequency())
		if err != nil {
			return 0, fmt.Errorf("stay %s: %w", s.ID(), err)
		}
		total += w
	}
	return total, nil
}

func frequencyWeight(f stay.Frequency) (int, error) {
	//nolint:exhaustive // once and unknown frequencies have no weight
	switch f {
	case stay.Daily:
		return 1, nil
	case stay.Weekly:
		return 7, nil
	case stay.Sometimes:
		return 28, nil
	}
	return 0, fmt.Errorf("%w: frequency %s", ErrUnsupportedStayConfiguration, f)
}
