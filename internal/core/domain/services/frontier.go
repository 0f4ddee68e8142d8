package services

import (
	"container/heap"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/stay"
)

// searchNode is a stay reached during the route search together with the
// estimated day the packet arrives there.
type searchNode struct {
	stay  *stay.Stay
	date  kernel.Date
	prev  *searchNode
	index int
}

// frontier is a min-heap of search nodes ordered by estimated day; ties are
// broken by stay id so that equal inputs always yield the same route.
type frontier []*searchNode

var _ heap.Interface = (*frontier)(nil)

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if !f[i].date.Equal(f[j].date) {
		return f[i].date.Before(f[j].date)
	}
	return f[i].stay.ID().Compare(f[j].stay.ID()) < 0
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].index = i
	f[j].index = j
}

func (f *frontier) Push(x any) {
	n := x.(*searchNode)
	n.index = len(*f)
	*f = append(*f, n)
}

func (f *frontier) Pop() any {
	old := *f
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*f = old[:last]
	return n
}
