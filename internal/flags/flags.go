// Package flags provides read-only feature flags loaded from the flags:
// section of the config. Unknown flags are disabled.
package flags

import (
	"maps"

	"github.com/zjrosen/letter/internal/log"
)

// FlagConfigReload enables keymap hot reload when the config file changes.
const FlagConfigReload = "config-reload"

// Registry holds feature flag state loaded from configuration.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from a config map. The map is copied.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: maps.Clone(flags)}
	if r.flags == nil {
		r.flags = make(map[string]bool)
	}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(r.flags))
	return r
}

// Enabled reports whether the named flag is on. Unknown flags and a nil
// registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
