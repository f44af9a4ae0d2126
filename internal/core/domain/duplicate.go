package domain

import "slices"

// DuplicateSet groups the distinct versions of a single package found in a graph.
type DuplicateSet struct {
	Name     string
	Versions []string
}

// DetectDuplicates returns one DuplicateSet for every package name that appears
// with at least two distinct versions.
//
// Sets are ordered by the first node of each name; versions keep the order in
// which they were first seen.
func DetectDuplicates(g *Graph) []DuplicateSet {
	var order []string
	versions := make(map[string][]string)

	for n := range g.Nodes() {
		name := n.Package.Name
		seen, exists := versions[name]
		if !exists {
			order = append(order, name)
		}
		if !slices.Contains(seen, n.Package.Version) {
			versions[name] = append(seen, n.Package.Version)
		}
	}

	var sets []DuplicateSet
	for _, name := range order {
		if len(versions[name]) > 1 {
			sets = append(sets, DuplicateSet{Name: name, Versions: versions[name]})
		}
	}
	return sets
}
