// Package pathfinder builds the metro network graph from lines and answers
// shortest-path queries over it.
//
// A Graph is an ephemeral, read-only snapshot: it is built from the current
// lines for each query (or cached by the caller) and never mutated after New.
package pathfinder

import (
	"cmp"
	"slices"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// Edge is one traversable direction of a line section.
type Edge struct {
	From      domain.StationID
	To        domain.StationID
	Distance  int
	LineID    domain.LineID
	Surcharge int
}

// Graph is an undirected multigraph over stations. Every section of every
// line contributes one edge per direction; parallel edges from different
// lines are kept apart.
type Graph struct {
	adjacency map[domain.StationID][]Edge
}

// New builds the network graph from the given lines.
func New(lines []*domain.Line) *Graph {
	g := &Graph{adjacency: make(map[domain.StationID][]Edge)}
	for _, line := range lines {
		if line == nil {
			continue
		}
		for _, section := range line.Sections() {
			g.addEdge(Edge{
				From:      section.UpStationID,
				To:        section.DownStationID,
				Distance:  section.Distance,
				LineID:    line.ID,
				Surcharge: line.Surcharge,
			})
			g.addEdge(Edge{
				From:      section.DownStationID,
				To:        section.UpStationID,
				Distance:  section.Distance,
				LineID:    line.ID,
				Surcharge: line.Surcharge,
			})
		}
	}

	// Fixed neighbour order keeps queries deterministic regardless of
	// the order lines were listed in.
	for id := range g.adjacency {
		slices.SortFunc(g.adjacency[id], compareEdges)
	}
	return g
}

func (g *Graph) addEdge(e Edge) {
	g.adjacency[e.From] = append(g.adjacency[e.From], e)
}

func compareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.To, b.To),
		cmp.Compare(a.Distance, b.Distance),
		cmp.Compare(a.Surcharge, b.Surcharge),
		cmp.Compare(a.LineID, b.LineID),
	)
}

// HasStation reports whether any line serves the station.
func (g *Graph) HasStation(id domain.StationID) bool {
	_, ok := g.adjacency[id]
	return ok
}

// Stations returns every station in the graph, sorted by ID.
func (g *Graph) Stations() []domain.StationID {
	ids := make([]domain.StationID, 0, len(g.adjacency))
	for id := range g.adjacency {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// EdgeCount returns the number of undirected edges (one per section).
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.adjacency {
		n += len(edges)
	}
	return n / 2
}

// FindPathStations returns the stations of the shortest path from source to target.
func (g *Graph) FindPathStations(source, target domain.StationID) ([]domain.StationID, error) {
	path, err := g.ShortestPath(source, target)
	if err != nil {
		return nil, err
	}
	return path.Stations, nil
}

// FindPathLength returns the distance of the shortest path from source to target.
func (g *Graph) FindPathLength(source, target domain.StationID) (int, error) {
	path, err := g.ShortestPath(source, target)
	if err != nil {
		return 0, err
	}
	return path.Distance, nil
}
