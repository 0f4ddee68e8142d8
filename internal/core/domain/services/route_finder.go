package services

import (
	"container/heap"
	"context"
	"errors"
	"fmt"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/model/stay"
)

// ErrNoRouteFound is returned when no chain of stays connects sender and
// recipient within the planning horizon.
var ErrNoRouteFound = errors.New("no route found")

// RouteFinder searches the cheapest chain of stays that carries a packet from
// its sender to its recipient. The graph is explored lazily through a
// StayFinder; edge weights come from the HandoverEstimator.
type RouteFinder struct {
	stays     StayFinder
	estimator HandoverEstimator
	policy    Policy
}

func NewRouteFinder(stays StayFinder, policy Policy) *RouteFinder {
	return &RouteFinder{
		stays:     stays,
		estimator: NewHandoverEstimator(policy),
		policy:    policy,
	}
}

// FindRoute returns the ordered stays of the best route for p calculated on
// day. The first stay belongs to the sender, the last one to the recipient.
// Leading stays of the sender are collapsed to the last one. Every estimated
// handover lies within day plus the policy horizon.
func (f *RouteFinder) FindRoute(ctx context.Context, p *packet.Packet, day kernel.Date) ([]*stay.Stay, error) {
	start, err := f.pickStart(ctx, p.SenderID(), day)
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewDateRange(day, day.AddDays(f.policy.HorizonDays))
	if err != nil {
		return nil, fmt.Errorf("planning window: %w", err)
	}
	startDate := f.estimator.Estimate(day, start)
	if !window.Contains(startDate) {
		return nil, ErrNoRouteFound
	}

	open := &frontier{}
	queued := make(map[kernel.UUID]*searchNode)
	visited := make(map[kernel.UUID]struct{})
	var visitedIDs []kernel.UUID

	first := &searchNode{stay: start, date: startDate}
	heap.Push(open, first)
	queued[start.ID()] = first

	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := heap.Pop(open).(*searchNode)
		delete(queued, current.stay.ID())

		if current.stay.UserID().IsEqual(p.RecipientID()) {
			return trimSenderPrefix(current.path(), p.SenderID()), nil
		}

		visited[current.stay.ID()] = struct{}{}
		visitedIDs = append(visitedIDs, current.stay.ID())

		candidates, err := f.stays.FindReachable(ctx, current.stay, visitedIDs, day)
		if err != nil {
			return nil, fmt.Errorf("find stays reachable from %s: %w", current.stay.ID(), err)
		}

		for _, candidate := range candidates {
			if _, done := visited[candidate.ID()]; done {
				continue
			}
			// the packet cannot go back in time
			if candidate.HasEndedBefore(current.date) {
				continue
			}
			date := f.estimator.Estimate(current.date, candidate)
			if !window.Contains(date) {
				continue
			}

			if existing, ok := queued[candidate.ID()]; ok {
				if date.Before(existing.date) {
					existing.date = date
					existing.prev = current
					heap.Fix(open, existing.index)
				}
				continue
			}

			node := &searchNode{stay: candidate, date: date, prev: current}
			heap.Push(open, node)
			queued[candidate.ID()] = node
		}
	}

	return nil, ErrNoRouteFound
}

// pickStart chooses the sender stay with the earliest estimated handover,
// lowest stay id first on ties.
func (f *RouteFinder) pickStart(ctx context.Context, senderID kernel.UUID, day kernel.Date) (*stay.Stay, error) {
	candidates, err := f.stays.FindStartCandidates(ctx, senderID, day)
	if err != nil {
		return nil, fmt.Errorf("find start stays of %s: %w", senderID, err)
	}

	var (
		best     *stay.Stay
		bestDate kernel.Date
	)
	for _, candidate := range candidates {
		if !IsStartCandidate(candidate, day) {
			continue
		}
		date := f.estimator.Estimate(day, candidate)
		if best == nil || date.Before(bestDate) ||
			(date.Equal(bestDate) && candidate.ID().Compare(best.ID()) < 0) {
			best, bestDate = candidate, date
		}
	}
	if best == nil {
		return nil, ErrNoRouteFound
	}
	return best, nil
}

func (n *searchNode) path() []*stay.Stay {
	var reversed []*stay.Stay
	for node := n; node != nil; node = node.prev {
		reversed = append(reversed, node.stay)
	}
	path := make([]*stay.Stay, len(reversed))
	for i, s := range reversed {
		path[len(reversed)-1-i] = s
	}
	return path
}

func trimSenderPrefix(path []*stay.Stay, senderID kernel.UUID) []*stay.Stay {
	last := 0
	for i := 1; i < len(path) && path[i].UserID().IsEqual(senderID); i++ {
		last = i
	}
	return path[last:]
}
