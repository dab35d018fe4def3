/*
Package log provides structured logging for the cascade engine using
zerolog.

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true, Output: os.Stdout})
	log.Info("cascade engine starting")

	resourceLog := log.WithResource("package/p1")
	resourceLog.Warn().Err(err).Msg("read failed, treating as absent")

	cascadeLog := log.WithComponent(log.ComponentCascade)
	cascadeLog.Debug().Msg("lane drained")

Every package under pkg/ that logs anything beyond a one-off error
tags its lines with one of the five log.Component values
(ComponentStore, ComponentEvaluator, ComponentCascade,
ComponentIngress, ComponentRemediation) so a log aggregator can filter
by subsystem without parsing message text. Use log.L() only for
call sites with no natural component or resource to scope to (process
lifecycle logging in cmd/cascaded, mainly). Always attach errors with
.Err(err) rather than string interpolation.
*/
package log
