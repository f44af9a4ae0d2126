// Package domain contains the core domain models and analysis logic for lockfile dependency graphs.
package domain

import (
	"encoding/binary"
	"iter"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// NodeID identifies a node in a Graph. IDs are assigned in insertion order and never change.
type NodeID int

// Node is a package record stored in the graph.
type Node struct {
	ID      NodeID
	Package PackageRecord
}

// Graph is a directed dependency graph of lockfile packages.
// Edges point from a package to each package it depends on.
type Graph struct {
	nodes      []Node
	index      map[string]NodeID
	edges      map[NodeID][]NodeID
	dependents map[NodeID][]NodeID
	edgeCount  int
	shadowed   []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index:      make(map[string]NodeID),
		edges:      make(map[NodeID][]NodeID),
		dependents: make(map[NodeID][]NodeID),
	}
}

// BuildGraph converts a flat list of package records into a dependency graph.
//
// Every record becomes its own node, even when two records share a name and version;
// in that case the later node takes over the index entry. Dependency keys that do not
// match an indexed package are dropped without error.
func BuildGraph(records []PackageRecord) *Graph {
	g := NewGraph()

	// First pass: insert every record and index it by key
	for _, rec := range records {
		g.addNode(rec)
	}

	// Second pass: resolve dependency keys into edges
	for i := range g.nodes {
		from := g.nodes[i].ID
		for _, key := range g.nodes[i].Package.Dependencies {
			if to, ok := g.index[key]; ok {
				g.addEdge(from, to)
			}
		}
	}

	return g
}

func (g *Graph) addNode(rec PackageRecord) NodeID {
	id := NodeID(len(g.nodes))
	rec.Dependencies = slices.Clone(rec.Dependencies)
	g.nodes = append(g.nodes, Node{ID: id, Package: rec})

	key := rec.Key()
	if _, exists := g.index[key]; exists {
		g.shadowed = append(g.shadowed, key)
	}
	g.index[key] = id
	return id
}

func (g *Graph) addEdge(from, to NodeID) {
	g.edges[from] = append(g.edges[from], to)
	g.dependents[to] = append(g.dependents[to], from)
	g.edgeCount++
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Node returns the node with the given ID.
func (g *Graph) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Lookup returns the ID of the node indexed under the given "name version" key.
func (g *Graph) Lookup(key string) (NodeID, bool) {
	id, ok := g.index[key]
	return id, ok
}

// Dependencies returns the IDs of the nodes the given node depends on.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	return slices.Clone(g.edges[id])
}

// Dependents returns the IDs of the nodes that depend on the given node.
func (g *Graph) Dependents(id NodeID) []NodeID {
	return slices.Clone(g.dependents[id])
}

// HasEdge reports whether there is an edge from one node to another.
func (g *Graph) HasEdge(from, to NodeID) bool {
	return slices.Contains(g.edges[from], to)
}

// Nodes returns an iterator over all nodes in ID order.
func (g *Graph) Nodes() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// ShadowedKeys returns the keys that were inserted more than once.
// Only the last node inserted under such a key is reachable through Lookup.
func (g *Graph) ShadowedKeys() []string {
	return slices.Compact(slices.Sorted(slices.Values(g.shadowed)))
}

// Checksum returns a fingerprint of the graph's nodes and edges.
// It is independent of insertion order.
func (g *Graph) Checksum() uint64 {
	keys := make([]string, 0, len(g.nodes))
	for _, n := range g.nodes {
		keys = append(keys, n.Package.Key())
	}
	slices.Sort(keys)

	edges := make([]string, 0, g.edgeCount)
	for from, targets := range g.edges {
		for _, to := range targets {
			edges = append(edges, g.nodes[from].Package.Key()+"->"+g.nodes[to].Package.Key())
		}
	}
	slices.Sort(edges)

	hasher := xxhash.New()
	for _, k := range keys {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{0})
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(edges)))
	_, _ = hasher.Write(buf[:])

	for _, e := range edges {
		_, _ = hasher.WriteString(e)
		_, _ = hasher.Write([]byte{0})
	}
	return hasher.Sum64()
}
