package services

import (
	"context"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
)

// StayFinder looks up candidate stays for the route search. Implementations
// must return exactly the stays accepted by ReachabilityRule.
type StayFinder interface {
	// FindReachable returns the stays a packet can travel to from origin,
	// excluding origin and the given stays, for a route calculated on day.
	FindReachable(ctx context.Context, origin *stay.Stay, exclude []kernel.UUID, day kernel.Date) ([]*stay.Stay, error)

	// FindStartCandidates returns the active stays of userID on day.
	FindStartCandidates(ctx context.Context, userID kernel.UUID, day kernel.Date) ([]*stay.Stay, error)
}

// ReachabilityRule decides whether a packet held at one stay can move to
// another.
//
// A candidate is reachable from origin when it is active on the calculation
// day, is not origin itself, is plannable (a one-time stay needs both dates),
// and either
//   - belongs to the same user (the holder carries the packet), or
//   - lies within the policy radius and is time compatible: the candidate is
//     not a fixed range one-time stay, origin is not a fixed range one-time
//     stay, or both fixed ranges overlap.
type ReachabilityRule struct {
	policy Policy
}

func NewReachabilityRule(policy Policy) ReachabilityRule {
	return ReachabilityRule{policy: policy}
}

// RadiusKm returns the handover radius the rule applies.
func (r ReachabilityRule) RadiusKm() float64 {
	return r.policy.RadiusKm
}

// IsReachable applies the rule to a single candidate.
func (r ReachabilityRule) IsReachable(origin, candidate *stay.Stay, day kernel.Date) bool {
	if candidate.ID().IsEqual(origin.ID()) || !candidate.IsActiveOn(day) || !candidate.IsPlannable() {
		return false
	}
	if candidate.UserID().IsEqual(origin.UserID()) {
		return true
	}
	if !origin.Place().Point().IsWithin(candidate.Place().Point(), r.policy.RadiusKm) {
		return false
	}
	return IsTimeCompatible(origin, candidate)
}

// IsTimeCompatible reports whether two stays can share a handover day.
func IsTimeCompatible(origin, candidate *stay.Stay) bool {
	candidateRange, candidateFixed := candidate.FixedRange()
	originRange, originFixed := origin.FixedRange()
	if !candidateFixed || !originFixed {
		return true
	}
	return candidateRange.Overlaps(originRange)
}

// IsStartCandidate reports whether a stay of the sender can be the first stay
// of a route calculated on day: it must be active, plannable and must not
// have ended.
func IsStartCandidate(s *stay.Stay, day kernel.Date) bool {
	return s.IsActiveOn(day) && s.IsPlannable() && !s.HasEndedBefore(day)
}
