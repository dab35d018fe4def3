package evaluator

import (
	"testing"

	"github.com/cascadeio/cascade/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected types.ContainerStatus
	}{
		{"lowercase running", "running", types.ContainerRunning},
		{"mixed case dead", "DeAd", types.ContainerDead},
		{"uppercase exited", "EXITED", types.ContainerExited},
		{"unrecognized falls closed to dead", "zombie", types.ContainerDead},
		{"empty string falls closed to dead", "", types.ContainerDead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.raw))
		})
	}
}

func TestModelState(t *testing.T) {
	tests := []struct {
		name     string
		statuses []types.ContainerStatus
		expected types.ModelState
	}{
		{
			name:     "empty multiset is created",
			statuses: nil,
			expected: types.ModelCreated,
		},
		{
			name:     "single dead dominates",
			statuses: []types.ContainerStatus{types.ContainerRunning, types.ContainerDead},
			expected: types.ModelDead,
		},
		{
			name:     "dead dominates even unanimous paused",
			statuses: []types.ContainerStatus{types.ContainerPaused, types.ContainerPaused, types.ContainerDead},
			expected: types.ModelDead,
		},
		{
			name:     "unanimous paused",
			statuses: []types.ContainerStatus{types.ContainerPaused, types.ContainerPaused},
			expected: types.ModelPaused,
		},
		{
			name:     "one non-paused breaks unanimity",
			statuses: []types.ContainerStatus{types.ContainerPaused, types.ContainerRunning},
			expected: types.ModelRunning,
		},
		{
			name:     "unanimous exited",
			statuses: []types.ContainerStatus{types.ContainerExited, types.ContainerExited},
			expected: types.ModelExited,
		},
		{
			name:     "one non-exited breaks unanimity",
			statuses: []types.ContainerStatus{types.ContainerExited, types.ContainerCreated},
			expected: types.ModelRunning,
		},
		{
			name:     "mixed running and created defaults to running",
			statuses: []types.ContainerStatus{types.ContainerCreated, types.ContainerRunning},
			expected: types.ModelRunning,
		},
		{
			name:     "single running",
			statuses: []types.ContainerStatus{types.ContainerRunning},
			expected: types.ModelRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ModelState(tt.statuses))
		})
	}
}

func TestPackageState(t *testing.T) {
	tests := []struct {
		name     string
		states   []types.ModelState
		expected types.PackageState
	}{
		{
			name:     "empty multiset is idle",
			states:   nil,
			expected: types.PackageIdle,
		},
		{
			name:     "all dead is error",
			states:   []types.ModelState{types.ModelDead, types.ModelDead},
			expected: types.PackageError,
		},
		{
			name:     "some dead is degraded",
			states:   []types.ModelState{types.ModelDead, types.ModelRunning},
			expected: types.PackageDegraded,
		},
		{
			name:     "unanimous paused",
			states:   []types.ModelState{types.ModelPaused, types.ModelPaused},
			expected: types.PackagePaused,
		},
		{
			name:     "unanimous exited",
			states:   []types.ModelState{types.ModelExited, types.ModelExited},
			expected: types.PackageExited,
		},
		{
			name:     "mixed non-dead defaults to running",
			states:   []types.ModelState{types.ModelRunning, types.ModelPaused},
			expected: types.PackageRunning,
		},
		{
			name:     "single running",
			states:   []types.ModelState{types.ModelRunning},
			expected: types.PackageRunning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PackageState(tt.states))
		})
	}
}

func TestHealthScore(t *testing.T) {
	assert.Equal(t, 1.0, HealthScore(nil))
	assert.Equal(t, 1.0, HealthScore([]types.ModelState{types.ModelRunning, types.ModelExited}))
	assert.Equal(t, 0.5, HealthScore([]types.ModelState{types.ModelRunning, types.ModelDead}))
	assert.Equal(t, 0.0, HealthScore([]types.ModelState{types.ModelDead, types.ModelPaused}))
}

func TestProblematicModels(t *testing.T) {
	modelStates := map[string]types.ModelState{
		"web":   types.ModelRunning,
		"db":    types.ModelDead,
		"cache": types.ModelPaused,
	}
	names := []string{"web", "db", "cache", "missing"}

	problematic := ProblematicModels(names, modelStates)
	assert.ElementsMatch(t, []string{"db", "cache", "missing"}, problematic)
}
