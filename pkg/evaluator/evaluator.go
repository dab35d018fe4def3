// Package evaluator implements the two pure, total, side-effect-free
// rules at the heart of the cascade engine: container statuses fold
// into a model state, model states fold into a package state. Neither
// function ever blocks, reads history, or talks to the store — they
// are deterministic functions of their input multiset alone.
package evaluator

import "github.com/cascadeio/cascade/pkg/types"

// rawStatusAliases maps observed runtime strings, lower-cased, onto
// the normalized ContainerStatus enum.
var rawStatusAliases = map[string]types.ContainerStatus{
	"created": types.ContainerCreated,
	"running": types.ContainerRunning,
	"stopped": types.ContainerStopped,
	"exited":  types.ContainerExited,
	"dead":    types.ContainerDead,
	"paused":  types.ContainerPaused,
}

// NormalizeStatus maps a raw, case-insensitive runtime status string
// onto the normalized enum. An unrecognized string normalizes to Dead:
// an unknown state is lost information, and lost information
// propagates pessimistically up the hierarchy.
func NormalizeStatus(raw string) types.ContainerStatus {
	if status, ok := rawStatusAliases[lower(raw)]; ok {
		return status
	}
	return types.ContainerDead
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ModelState computes a model's aggregated state from the normalized
// statuses of its member containers. Evaluated in priority order,
// first match wins:
//
//  1. empty multiset            -> Created
//  2. any element Dead          -> Dead
//  3. every element Paused      -> Paused
//  4. every element Exited      -> Exited
//  5. otherwise                 -> Running
//
// Dead dominates because a single lost container invalidates the
// model; the unanimous states only trigger when every member agrees.
func ModelState(statuses []types.ContainerStatus) types.ModelState {
	if len(statuses) == 0 {
		return types.ModelCreated
	}

	allPaused, allExited := true, true
	for _, s := range statuses {
		if s == types.ContainerDead {
			return types.ModelDead
		}
		if s != types.ContainerPaused {
			allPaused = false
		}
		if s != types.ContainerExited {
			allExited = false
		}
	}

	switch {
	case allPaused:
		return types.ModelPaused
	case allExited:
		return types.ModelExited
	default:
		return types.ModelRunning
	}
}

// PackageState computes a package's aggregated state from the current
// states of its member models. Evaluated in priority order, first
// match wins:
//
//  1. empty multiset                         -> Idle
//  2. every element Dead                     -> Error
//  3. at least one Dead, but not all         -> Degraded
//  4. every element Paused                   -> Paused
//  5. every element Exited                   -> Exited
//  6. otherwise                              -> Running
//
// Error (all dead) is the terminal that triggers remediation; Degraded
// is strictly the non-unanimous failure case, which is why it is
// tested after Error rather than folded into the same branch.
func PackageState(states []types.ModelState) types.PackageState {
	if len(states) == 0 {
		return types.PackageIdle
	}

	deadCount := 0
	allPaused, allExited := true, true
	for _, s := range states {
		if s == types.ModelDead {
			deadCount++
		}
		if s != types.ModelPaused {
			allPaused = false
		}
		if s != types.ModelExited {
			allExited = false
		}
	}

	switch {
	case deadCount == len(states):
		return types.PackageError
	case deadCount > 0:
		return types.PackageDegraded
	case allPaused:
		return types.PackagePaused
	case allExited:
		return types.PackageExited
	default:
		return types.PackageRunning
	}
}

// HealthScore returns the fraction of model states that are "healthy"
// (Running or Exited) — a quick-look metric supplementing the package
// state itself, not used by the cascade engine's own decision-making.
func HealthScore(states []types.ModelState) float64 {
	if len(states) == 0 {
		return 1.0
	}
	healthy := 0
	for _, s := range states {
		if s == types.ModelRunning || s == types.ModelExited {
			healthy++
		}
	}
	return float64(healthy) / float64(len(states))
}

// ProblematicModels returns, in the order given, the member model
// names whose current state is Dead or Paused — the two states that
// indicate a model isn't contributing useful work. A model missing
// from modelStates entirely (no observation has ever reached the
// store for it) is treated as Dead, since an absent resource the
// caller expected to find is itself a signal worth surfacing.
func ProblematicModels(modelNames []string, modelStates map[string]types.ModelState) []string {
	var problematic []string
	for _, name := range modelNames {
		state, ok := modelStates[name]
		if !ok {
			problematic = append(problematic, name)
			continue
		}
		if state == types.ModelDead || state == types.ModelPaused {
			problematic = append(problematic, name)
		}
	}
	return problematic
}
