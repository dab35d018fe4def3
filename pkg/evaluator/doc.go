/*
Package evaluator holds the cascade engine's rule logic: pure
functions that fold a resource's children into its own state. Nothing
in this package touches the store, the network, or a clock — every
function here is deterministic and side-effect-free, which is what
lets the cascade engine call them freely inside a lane without
worrying about retries producing different answers.

# Priority order

ModelState folds a set of container statuses:

	Dead dominates       -> any container Dead           => ModelDead
	unanimous Paused     -> every container Paused        => ModelPaused
	unanimous Exited      -> every container Exited        => ModelExited
	default              -> anything else                 => ModelRunning

PackageState folds a set of member model states:

	all Dead             -> every model Dead               => PackageError
	some Dead            -> at least one, not all, Dead     => PackageDegraded
	unanimous Paused     -> every model Paused               => PackagePaused
	unanimous Exited      -> every model Exited               => PackageExited
	default              -> anything else                   => PackageRunning

An empty input folds to the initial state at each level (ModelCreated,
PackageIdle), checked before every rule above, rather than a special
"Unknown" state — there is no such state in this evaluator's output
space.

# Usage

	state := evaluator.ModelState([]types.ContainerStatus{
		types.ContainerRunning, types.ContainerRunning,
	})
	// state == types.ModelRunning

	score := evaluator.HealthScore(modelStates)
	bad := evaluator.ProblematicModels(memberNames, modelStatesByName)

HealthScore and ProblematicModels are not part of the fold above; they
are reporting helpers consumed by pkg/cascade (for the
cascade_package_health_score gauge, and for log context when it
triggers remediation) and pkg/metrics (for the fleet health payload),
not inputs to PackageState itself.
*/
package evaluator
