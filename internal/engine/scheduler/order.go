// Package scheduler implements topological ordering, layer partitioning and
// the bounded-concurrency build executor.
package scheduler

import (
	"slices"
	"strings"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"go.trai.ch/zerr"
)

// TopologicalOrder produces a linear ordering of all graph nodes such that
// every node appears after all nodes it depends on, using Kahn's algorithm.
// Tie-breaking among simultaneously-ready nodes is order-of-discovery;
// callers must not depend on a specific order among independent packages.
//
// If the graph contains a cycle the ordering is incomplete and
// domain.ErrCycleDetected is returned, carrying the sorted set of package
// names that could not be ordered.
func TopologicalOrder(g *domain.DependencyGraph) ([]domain.InternedString, error) {
	unresolved := make(map[domain.InternedString]int, g.Len())
	var ready []domain.InternedString

	for pkg := range g.Packages() {
		deps := len(g.Dependencies(pkg.Name))
		unresolved[pkg.Name] = deps
		if deps == 0 {
			ready = append(ready, pkg.Name)
		}
	}

	order := make([]domain.InternedString, 0, g.Len())
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)
		delete(unresolved, name)

		for _, dependent := range g.Dependents(name) {
			unresolved[dependent]--
			if unresolved[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) < g.Len() {
		remaining := make([]string, 0, len(unresolved))
		for name := range unresolved {
			remaining = append(remaining, name.String())
		}
		slices.Sort(remaining)
		return nil, zerr.With(domain.ErrCycleDetected, "unresolved", strings.Join(remaining, ", "))
	}

	return order, nil
}
