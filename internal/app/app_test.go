package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sourcewizard-ai/bdep/internal/adapters/report"
	"github.com/sourcewizard-ai/bdep/internal/adapters/shell"
	"github.com/sourcewizard-ai/bdep/internal/app"
	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
	"github.com/sourcewizard-ai/bdep/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	registry *mocks.MockRegistry
	runner   *mocks.MockRunner
	probe    *mocks.MockProbe
	logger   *mocks.MockLogger
	reporter *mocks.MockReporter
}

func setupAppTest(t *testing.T, settings ports.Settings) (*app.App, appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appMocks{
		registry: mocks.NewMockRegistry(ctrl),
		runner:   mocks.NewMockRunner(ctrl),
		probe:    mocks.NewMockProbe(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
	}

	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any()).AnyTimes()
	m.reporter.EXPECT().RunStarted(gomock.Any()).AnyTimes()
	m.reporter.EXPECT().LayerStarted(gomock.Any(), gomock.Any()).AnyTimes()
	m.reporter.EXPECT().PackageStarted(gomock.Any()).AnyTimes()
	m.reporter.EXPECT().PackageFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.reporter.EXPECT().RunFinished(gomock.Any()).AnyTimes()

	a := app.New(m.registry, m.runner, m.probe, m.logger, settings, report.NewWriter(settings.ReportPath)).
		WithReporter(m.reporter)
	return a, m
}

func workspacePackage(name string, deps ...string) domain.PackageRecord {
	interned := make([]domain.InternedString, len(deps))
	for i, d := range deps {
		interned[i] = domain.NewInternedString(d)
	}
	return domain.PackageRecord{
		Name:         domain.NewInternedString(name),
		Path:         "/ws/" + name,
		DeclaredDeps: interned,
		BuildScript:  "tsc",
		OutDir:       "dist",
	}
}

func packageMap(records ...domain.PackageRecord) map[string]domain.PackageRecord {
	out := make(map[string]domain.PackageRecord, len(records))
	for _, r := range records {
		out[r.Name.String()] = r
	}
	return out
}

func matchName(name string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		pkg, ok := x.(domain.PackageRecord)
		return ok && pkg.Name.String() == name
	})
}

func TestApp_Execute_BuildsClosureInDependencyOrder(t *testing.T) {
	a, m := setupAppTest(t, ports.Settings{})

	m.registry.EXPECT().Collect(gomock.Any(), "/ws/app").Return(packageMap(
		workspacePackage("app", "lib-a", "lib-b"),
		workspacePackage("lib-a", "core"),
		workspacePackage("lib-b", "core"),
		workspacePackage("core"),
	), nil)

	var order []string
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, pkg domain.PackageRecord) error {
			order = append(order, pkg.Name.String())
			return nil
		}).Times(4)

	result, err := a.Execute(context.Background(), "/ws/app", app.ExecuteOptions{Force: true, Concurrency: 1})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 4)
	for name, outcome := range result.Outcomes {
		assert.Equal(t, domain.OutcomeBuilt, outcome, name)
	}

	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}
	assert.Less(t, position["core"], position["lib-a"])
	assert.Less(t, position["core"], position["lib-b"])
	assert.Less(t, position["lib-a"], position["app"])
	assert.Less(t, position["lib-b"], position["app"])
}

func TestApp_Execute_FreshnessDecidesWithoutForce(t *testing.T) {
	a, m := setupAppTest(t, ports.Settings{Excludes: []string{"node_modules"}})

	m.registry.EXPECT().Collect(gomock.Any(), "/ws/app").Return(packageMap(
		workspacePackage("app", "lib"),
		workspacePackage("lib"),
	), nil)

	// lib's output directory is present and up to date; app's is missing.
	m.probe.EXPECT().Exists("/ws/lib/dist").Return(true)
	m.probe.EXPECT().Stats("/ws/lib", gomock.Any()).Return(domain.TreeStats{Files: 0}, nil)
	m.probe.EXPECT().Exists("/ws/app/dist").Return(false)
	m.runner.EXPECT().Run(gomock.Any(), matchName("app")).Return(nil)

	result, err := a.Execute(context.Background(), "/ws/app", app.ExecuteOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSkippedUnchanged, result.Outcomes["lib"])
	assert.Equal(t, domain.OutcomeBuilt, result.Outcomes["app"])
}

func TestApp_Execute_FailurePropagatesAsBuildFailed(t *testing.T) {
	a, m := setupAppTest(t, ports.Settings{})

	m.registry.EXPECT().Collect(gomock.Any(), "/ws/app").Return(packageMap(
		workspacePackage("app", "lib"),
		workspacePackage("lib"),
	), nil)

	buildErr := errors.New("tsc exited 2")
	m.runner.EXPECT().Run(gomock.Any(), matchName("lib")).Return(buildErr)

	result, err := a.Execute(context.Background(), "/ws/app", app.ExecuteOptions{Force: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, buildErr)

	assert.Equal(t, domain.OutcomeFailed, result.Outcomes["lib"])
	_, attempted := result.Outcomes["app"]
	assert.False(t, attempted, "dependents of a failed package must never run")
}

func TestApp_Execute_CycleAbortsBeforeAnyBuild(t *testing.T) {
	a, m := setupAppTest(t, ports.Settings{})

	m.registry.EXPECT().Collect(gomock.Any(), "/ws/a").Return(packageMap(
		workspacePackage("a", "b"),
		workspacePackage("b", "a"),
	), nil)
	// No runner expectations: any invocation fails the test.

	_, err := a.Execute(context.Background(), "/ws/a", app.ExecuteOptions{Force: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCycleDetected)
	assert.NotErrorIs(t, err, domain.ErrBuildFailed)
}

func TestApp_Execute_CollectErrorWrapped(t *testing.T) {
	a, m := setupAppTest(t, ports.Settings{})

	m.registry.EXPECT().Collect(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrPackageNotFound)

	_, err := a.Execute(context.Background(), "/nowhere", app.ExecuteOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
	assert.Contains(t, err.Error(), "failed to collect workspace members")
}

func TestApp_Execute_NestedRunGuard(t *testing.T) {
	t.Setenv(shell.NestedRunEnv, "1")

	a, _ := setupAppTest(t, ports.Settings{})
	// Registry, runner and probe have no expectations: the guarded run must
	// not touch the workspace at all.

	result, err := a.Execute(context.Background(), "/ws/app", app.ExecuteOptions{})
	require.NoError(t, err)
	assert.Empty(t, result.Outcomes)
}

func TestApp_Execute_WritesReport(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.json")
	a, m := setupAppTest(t, ports.Settings{})

	m.registry.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(packageMap(
		workspacePackage("core"),
	), nil)
	m.runner.EXPECT().Run(gomock.Any(), matchName("core")).Return(nil)

	_, err := a.Execute(context.Background(), "/ws/core", app.ExecuteOptions{Force: true, ReportPath: reportPath})
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var decoded domain.RunResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.OutcomeBuilt, decoded.Outcomes["core"])
}

func TestApp_Execute_ReportWrittenEvenOnFailure(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "report.json")
	a, m := setupAppTest(t, ports.Settings{ReportPath: reportPath})

	m.registry.EXPECT().Collect(gomock.Any(), gomock.Any()).Return(packageMap(
		workspacePackage("core"),
	), nil)
	m.runner.EXPECT().Run(gomock.Any(), matchName("core")).Return(errors.New("boom"))

	_, err := a.Execute(context.Background(), "/ws/core", app.ExecuteOptions{Force: true})
	require.Error(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var decoded domain.RunResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.OutcomeFailed, decoded.Outcomes["core"])
}
