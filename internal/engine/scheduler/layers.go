package scheduler

import (
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"go.trai.ch/zerr"
)

// PartitionLayers splits a topological ordering into the minimal number of
// ordered layers such that every package's dependencies lie in strictly
// earlier layers. Each pass over the remaining nodes collects every package
// whose dependencies are all assigned; packages in the same layer therefore
// have no dependency relationship to each other and may build concurrently.
//
// A pass that yields no progress means the ordering step failed to catch a
// cycle, which is an internal-consistency defect surfaced as
// domain.ErrLayeringInconsistency rather than a user-facing error.
func PartitionLayers(order []domain.InternedString, g *domain.DependencyGraph) (domain.Layers, error) {
	assigned := make(map[domain.InternedString]bool, len(order))
	remaining := order

	var layers domain.Layers
	for len(remaining) > 0 {
		var layer, deferred []domain.InternedString
		for _, name := range remaining {
			if depsAssigned(g.Dependencies(name), assigned) {
				layer = append(layer, name)
			} else {
				deferred = append(deferred, name)
			}
		}

		if len(layer) == 0 {
			return nil, zerr.With(domain.ErrLayeringInconsistency, "remaining", len(deferred))
		}

		for _, name := range layer {
			assigned[name] = true
		}
		layers = append(layers, layer)
		remaining = deferred
	}

	return layers, nil
}

func depsAssigned(deps []domain.InternedString, assigned map[domain.InternedString]bool) bool {
	for _, dep := range deps {
		if !assigned[dep] {
			return false
		}
	}
	return true
}
