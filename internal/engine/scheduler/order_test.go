package scheduler_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

func record(name string, deps ...string) domain.PackageRecord {
	interned := make([]domain.InternedString, len(deps))
	for i, d := range deps {
		interned[i] = domain.NewInternedString(d)
	}
	return domain.PackageRecord{
		Name:         domain.NewInternedString(name),
		Path:         "/ws/" + name,
		DeclaredDeps: interned,
		BuildScript:  "make",
		OutDir:       "dist",
	}
}

func graphOf(records ...domain.PackageRecord) *domain.DependencyGraph {
	set := make(map[string]domain.PackageRecord, len(records))
	for _, r := range records {
		set[r.Name.String()] = r
	}
	return domain.BuildGraph(set)
}

func indexOf(order []domain.InternedString, name string) int {
	return slices.Index(order, domain.NewInternedString(name))
}

func TestTopologicalOrder_DependenciesFirst(t *testing.T) {
	g := graphOf(
		record("app", "lib-a", "lib-b"),
		record("lib-a", "core"),
		record("lib-b", "core"),
		record("core"),
	)

	order, err := scheduler.TopologicalOrder(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(order))
	}

	for _, pair := range [][2]string{
		{"core", "lib-a"},
		{"core", "lib-b"},
		{"lib-a", "app"},
		{"lib-b", "app"},
	} {
		if indexOf(order, pair[0]) >= indexOf(order, pair[1]) {
			t.Errorf("expected %s before %s in %v", pair[0], pair[1], order)
		}
	}
}

func TestTopologicalOrder_Diamond(t *testing.T) {
	// A -> B, A -> C, B -> D, C -> D: D must precede B and C.
	g := graphOf(
		record("A", "B", "C"),
		record("B", "D"),
		record("C", "D"),
		record("D"),
	)

	order, err := scheduler.TopologicalOrder(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d := indexOf(order, "D")
	if d >= indexOf(order, "B") || d >= indexOf(order, "C") {
		t.Errorf("expected D before B and C in %v", order)
	}
	if indexOf(order, "A") != len(order)-1 {
		t.Errorf("expected A last in %v", order)
	}
}

func TestTopologicalOrder_Cycle(t *testing.T) {
	g := graphOf(
		record("A", "B"),
		record("B", "A"),
	)

	_, err := scheduler.TopologicalOrder(g)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	if !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	unresolved, _ := zErr.Metadata()["unresolved"].(string)
	if !strings.Contains(unresolved, "A") || !strings.Contains(unresolved, "B") {
		t.Errorf("expected unresolved set to name A and B, got %q", unresolved)
	}
}

func TestTopologicalOrder_CycleNamesOnlyUnresolved(t *testing.T) {
	// standalone is orderable; only the two cycle members remain.
	g := graphOf(
		record("A", "B"),
		record("B", "A"),
		record("standalone"),
	)

	_, err := scheduler.TopologicalOrder(g)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	unresolved, _ := zErr.Metadata()["unresolved"].(string)
	if unresolved != "A, B" {
		t.Errorf("expected unresolved %q, got %q", "A, B", unresolved)
	}
}

func TestTopologicalOrder_Empty(t *testing.T) {
	order, err := scheduler.TopologicalOrder(graphOf())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty ordering, got %v", order)
	}
}
