package secsearch

import "sort"

// Graph is an undirected weighted graph over article IDs. Edges carry the
// accumulated relationship weight between a pair (shared topic, shared rare
// vocabulary); there is at most one edge per pair.
type Graph struct {
	adj map[string]map[string]float64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]float64)}
}

// AddVertex registers an ID. Adding a vertex twice is a no-op.
func (g *Graph) AddVertex(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]float64)
	}
}

// HasVertex reports whether the ID is present.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	return len(g.adj)
}

// SetEdge sets the weight of the undirected edge a-b, creating the vertices
// and the edge as needed. Setting an existing edge replaces its weight.
func (g *Graph) SetEdge(a, b string, weight float64) {
	if a == b {
		return
	}
	g.AddVertex(a)
	g.AddVertex(b)
	g.adj[a][b] = weight
	g.adj[b][a] = weight
}

// EdgeWeight returns the weight of the edge a-b and whether it exists.
func (g *Graph) EdgeWeight(a, b string) (float64, bool) {
	w, ok := g.adj[a][b]
	return w, ok
}

// Neighbors returns the IDs adjacent to id in sorted order. Unknown IDs
// yield no neighbors.
func (g *Graph) Neighbors(id string) []string {
	edges := g.adj[id]
	if len(edges) == 0 {
		return nil
	}
	out := make([]string, 0, len(edges))
	for n := range edges {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ClearEdges drops every edge but keeps the vertices. Used when the
// relationship passes are rerun over the full corpus.
func (g *Graph) ClearEdges() {
	for id := range g.adj {
		g.adj[id] = make(map[string]float64)
	}
}
