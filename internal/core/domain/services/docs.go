// Package services provides the domain services of the relay: the rules that
// span several aggregates and have no natural home in one of them.
//
// The package includes:
//   - Policy: tunable constants of route planning
//   - HandoverEstimator: the earliest plausible day a packet reaches a stay
//   - ReachabilityRule: which stays a packet can travel to from a given stay
//   - RouteFinder: the cheapest chain of stays from sender to recipient
//   - DateRangeAllocator: proposed handover date ranges along a found chain
//
// The services are pure; stay lookups go through the StayFinder interface,
// which the persistence adapters implement.
package services
