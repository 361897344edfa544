package pipeline

import "strings"

// Route is the classifier's decision about which responder handles a
// query.
type Route string

const (
	RouteData Route = "data"
	RoutePlot Route = "plot"
)

// routeFor maps a classifier label to a Route. Labels outside the
// recognized set are not rejected: they fall through to the data arm.
// This mirrors the upstream system's observable behavior and is pinned
// by tests; a malformed classification must never abort the run.
func routeFor(label string) Route {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case string(RoutePlot):
		return RoutePlot
	case string(RouteData):
		return RouteData
	default:
		return RouteData
	}
}
