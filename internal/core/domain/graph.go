// Package domain contains the core domain models for the workspace
// dependency graph and build scheduling.
package domain

import "iter"

// DependencyGraph is a directed graph over one run's package set.
// Forward edges point from a dependent to its dependencies; the reverse
// adjacency is kept as its exact transpose so the scheduler can walk both
// directions without recomputation.
type DependencyGraph struct {
	nodes        map[InternedString]PackageRecord
	dependsOn    map[InternedString][]InternedString
	dependedOnBy map[InternedString][]InternedString
}

// BuildGraph constructs a DependencyGraph from the package set of one run.
// A forward edge is added only when the declared dependency name is itself a
// member of the set; other names reference packages outside the collected
// closure and are dropped. Construction has no failure mode of its own: an
// empty input yields an empty graph, and cycles are detected later by the
// scheduler, not here.
func BuildGraph(packages map[string]PackageRecord) *DependencyGraph {
	g := &DependencyGraph{
		nodes:        make(map[InternedString]PackageRecord, len(packages)),
		dependsOn:    make(map[InternedString][]InternedString, len(packages)),
		dependedOnBy: make(map[InternedString][]InternedString, len(packages)),
	}

	for _, pkg := range packages {
		g.nodes[pkg.Name] = pkg
	}

	for _, pkg := range g.nodes {
		for _, dep := range pkg.DeclaredDeps {
			if _, inScope := g.nodes[dep]; !inScope {
				continue
			}
			g.dependsOn[pkg.Name] = append(g.dependsOn[pkg.Name], dep)
			g.dependedOnBy[dep] = append(g.dependedOnBy[dep], pkg.Name)
		}
	}

	return g
}

// Len returns the number of packages in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Package returns the record for the given name.
func (g *DependencyGraph) Package(name InternedString) (PackageRecord, bool) {
	pkg, ok := g.nodes[name]
	return pkg, ok
}

// Dependencies returns the in-scope packages that name depends on.
func (g *DependencyGraph) Dependencies(name InternedString) []InternedString {
	return g.dependsOn[name]
}

// Dependents returns the packages that depend on name.
func (g *DependencyGraph) Dependents(name InternedString) []InternedString {
	return g.dependedOnBy[name]
}

// Packages returns an iterator over all package records in the graph.
// Iteration order is unspecified.
func (g *DependencyGraph) Packages() iter.Seq[PackageRecord] {
	return func(yield func(PackageRecord) bool) {
		for _, pkg := range g.nodes {
			if !yield(pkg) {
				return
			}
		}
	}
}

// Layers is an ordered partition of the graph into sets of mutually
// independent packages. Every dependency of a package in layer i lives in
// some layer j < i; layer 0 holds exactly the packages with no in-scope
// dependencies. Packages within one layer may build concurrently in any
// relative order.
type Layers [][]InternedString

// Count returns the total number of packages across all layers.
func (l Layers) Count() int {
	n := 0
	for _, layer := range l {
		n += len(layer)
	}
	return n
}
