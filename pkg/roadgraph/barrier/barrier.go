// Package barrier is the in-memory BarrierSet implementation: a plain set
// of node ids tagged barrier=* or access=no/private during ingestion.
package barrier

import "github.com/arimbawa-w/roadisect/pkg/datastructure"

type Set struct {
	nodes map[datastructure.NodeID]struct{}
}

func NewSet() *Set {
	return &Set{nodes: make(map[datastructure.NodeID]struct{})}
}

func (s *Set) Add(node datastructure.NodeID) {
	s.nodes[node] = struct{}{}
}

func (s *Set) IsBarrier(node datastructure.NodeID) bool {
	_, ok := s.nodes[node]
	return ok
}

func (s *Set) Len() int {
	return len(s.nodes)
}
