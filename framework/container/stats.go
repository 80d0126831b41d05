package container

import (
	"strings"

	metrics "github.com/rcrowley/go-metrics"
)

// Counter names, registered per scope as "scope/<name>/<counter>".
const (
	StatResolutions  = "resolutions"
	StatSingletons   = "singletonConstructions"
	StatFactories    = "factoryFallbacks"
	StatLifecycleErr = "lifecycleErrors"
)

type scopeStats struct {
	resolutions metrics.Counter
	singletons  metrics.Counter
	factories   metrics.Counter
	lifecycle   metrics.Counter
}

func newScopeStats(r metrics.Registry, scope string) *scopeStats {
	return &scopeStats{
		resolutions: metrics.GetOrRegisterCounter(StatName(scope, StatResolutions), r),
		singletons:  metrics.GetOrRegisterCounter(StatName(scope, StatSingletons), r),
		factories:   metrics.GetOrRegisterCounter(StatName(scope, StatFactories), r),
		lifecycle:   metrics.GetOrRegisterCounter(StatName(scope, StatLifecycleErr), r),
	}
}

// StatName returns the registry name of a scope counter. Slashes in the
// scope name are replaced so the hierarchy stays readable.
func StatName(scope, counter string) string {
	return "scope/" + strings.ReplaceAll(scope, "/", "_SLASH_") + "/" + counter
}
