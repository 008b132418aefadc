package pathfinder

import (
	"container/heap"
	"fmt"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// Path is a shortest route through the graph.
type Path struct {
	// Stations are the visited stations from source to target.
	Stations []domain.StationID

	// Edges are the traversed edges; len(Edges) == len(Stations)-1.
	Edges []Edge

	// Distance is the sum of edge distances.
	Distance int

	// Surcharge is the highest surcharge among traversed lines.
	Surcharge int
}

// Lines returns the distinct lines ridden, in riding order.
func (p Path) Lines() []domain.LineID {
	var lines []domain.LineID
	for _, e := range p.Edges {
		if len(lines) == 0 || lines[len(lines)-1] != e.LineID {
			lines = append(lines, e.LineID)
		}
	}
	return lines
}

// label is the cost of reaching a station: distance first, then the highest
// surcharge paid so far. Both components only grow along a path, so Dijkstra
// stays correct on the lexicographic order and, among equally short routes,
// settles on the cheaper one.
type label struct {
	distance  int
	surcharge int
}

func (l label) less(o label) bool {
	if l.distance != o.distance {
		return l.distance < o.distance
	}
	return l.surcharge < o.surcharge
}

func (l label) extend(e Edge) label {
	return label{
		distance:  l.distance + e.Distance,
		surcharge: max(l.surcharge, e.Surcharge),
	}
}

// ShortestPath returns the shortest path by distance from source to target.
// Ties on distance prefer the lower surcharge, then the lower station ID.
func (g *Graph) ShortestPath(source, target domain.StationID) (Path, error) {
	if source == target {
		return Path{}, domain.ErrSameStation
	}
	if !g.HasStation(source) {
		return Path{}, fmt.Errorf("%w: %s is not served by any line", domain.ErrStationNotFound, source)
	}
	if !g.HasStation(target) {
		return Path{}, fmt.Errorf("%w: %s is not served by any line", domain.ErrStationNotFound, target)
	}

	best := map[domain.StationID]label{source: {}}
	cameFrom := make(map[domain.StationID]Edge)
	settled := make(map[domain.StationID]bool)

	pq := &priorityQueue{}
	heap.Push(pq, &pqItem{station: source})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.station
		if settled[current] {
			continue
		}
		settled[current] = true
		if current == target {
			return reconstructPath(cameFrom, source, target, item.label), nil
		}

		for _, e := range g.adjacency[current] {
			if settled[e.To] {
				continue
			}
			candidate := item.label.extend(e)
			if old, ok := best[e.To]; !ok || candidate.less(old) {
				best[e.To] = candidate
				cameFrom[e.To] = e
				heap.Push(pq, &pqItem{station: e.To, label: candidate})
			}
		}
	}

	return Path{}, fmt.Errorf("%w: %s to %s", domain.ErrNoPath, source, target)
}

func reconstructPath(cameFrom map[domain.StationID]Edge, source, target domain.StationID, l label) Path {
	var edges []Edge
	for current := target; current != source; {
		e := cameFrom[current]
		edges = append(edges, e)
		current = e.From
	}

	path := Path{
		Stations:  make([]domain.StationID, 0, len(edges)+1),
		Edges:     make([]Edge, 0, len(edges)),
		Distance:  l.distance,
		Surcharge: l.surcharge,
	}
	path.Stations = append(path.Stations, source)
	for i := len(edges) - 1; i >= 0; i-- {
		path.Edges = append(path.Edges, edges[i])
		path.Stations = append(path.Stations, edges[i].To)
	}
	return path
}

type pqItem struct {
	station domain.StationID
	label   label
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].label != pq[j].label {
		return pq[i].label.less(pq[j].label)
	}
	return pq[i].station < pq[j].station
}

func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
