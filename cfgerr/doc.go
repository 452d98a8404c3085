// Package cfgerr defines the error taxonomy shared by the configuration
// loading packages.
//
// Every failure is reported as an *Error tagged with a Kind. Each Kind has a
// sentinel (ErrFile, ErrCyclicExtends, ...) so callers can branch with
// errors.Is without caring about the concrete type:
//
//	if errors.Is(err, cfgerr.ErrCyclicExtends) {
//	    // show the chain to the user
//	}
//
// When no configuration file could be loaded, the individual failures are
// combined into an *AggregateError of kind DiscoveryFailed.
package cfgerr
