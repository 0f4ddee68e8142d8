package services

import (
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
)

// HandoverEstimator predicts when a packet that is available on some day can
// be handed to the holder of a stay. It is the edge weight of the route search.
type HandoverEstimator struct {
	policy Policy
}

func NewHandoverEstimator(policy Policy) HandoverEstimator {
	return HandoverEstimator{policy: policy}
}

// Estimate returns the earliest plausible handover day at s for a packet
// available on previous. The result is never before previous.
//
//   - daily, weekly, sometimes: previous plus the policy's expected wait
//   - once with a start date: the later of previous and the start date
//   - anything else: previous plus the fallback wait
//
// Snoozes (inactive until) are not considered here; snoozed stays are never
// offered to the estimator.
func (e HandoverEstimator) Estimate(previous kernel.Date, s *stay.Stay) kernel.Date {
	//nolint:exhaustive // unknown frequencies take the fallback wait
	switch s.Frequency() {
	case stay.Daily:
		return previous.AddDays(e.policy.DailyWaitDays)
	case stay.Weekly:
		return previous.AddDays(e.policy.WeeklyWaitDays)
	case stay.Sometimes:
		return previous.AddDays(e.policy.SometimesWaitDays)
	case stay.Once:
		if start := s.Start(); start != nil {
			return kernel.MaxDate(previous, *start)
		}
	}
	return previous.AddDays(e.policy.FallbackWaitDays)
}
