// internal/surface/surface.go
// Package surface renders declarative chart options into styled terminal
// frames. It is the in-process implementation of the chart.Surface contract.
package surface

import "sync"

// Region is the drawable area a surface binds to. Exactly one surface may
// own a region at a time.
type Region struct {
	Width  int
	Height int
}

var (
	moduleMu sync.Mutex
	modules  = map[string]bool{}
)

// RegisterModules loads the named rendering capabilities. Registration is
// idempotent; repeated mounts do not accumulate anything.
func RegisterModules(names []string) {
	moduleMu.Lock()
	defer moduleMu.Unlock()
	for _, name := range names {
		modules[name] = true
	}
}

// ModuleRegistered reports whether a capability has been loaded.
func ModuleRegistered(name string) bool {
	moduleMu.Lock()
	defer moduleMu.Unlock()
	return modules[name]
}
