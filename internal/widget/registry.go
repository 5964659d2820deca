// Package widget holds the registry of widget configurations served at
// /widgets.json. The registry is populated once at startup from the catalog
// and is read-only afterwards.
package widget

import (
	"fmt"
	"sort"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
)

// Registry maps endpoint name to widget configuration.
type Registry struct {
	widgets map[string]model.WidgetConfig
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{widgets: make(map[string]model.WidgetConfig)}
}

// Register adds a widget keyed by its endpoint. The id defaults to the
// endpoint when unset. Widgets without an endpoint are ignored.
func (r *Registry) Register(cfg model.WidgetConfig) {
	if cfg.Endpoint == "" {
		return
	}
	if cfg.ID == "" {
		cfg.ID = cfg.Endpoint
	}
	r.widgets[cfg.Endpoint] = cfg
}

// Has reports whether a widget with the given id is registered.
func (r *Registry) Has(id string) bool {
	for _, w := range r.widgets {
		if w.ID == id || w.WidgetID == id {
			return true
		}
	}
	return false
}

// All returns the endpoint → config map served as widgets.json.
func (r *Registry) All() map[string]model.WidgetConfig {
	out := make(map[string]model.WidgetConfig, len(r.widgets))
	for k, v := range r.widgets {
		out[k] = v
	}
	return out
}

// Endpoints returns the registered endpoint names, sorted.
func (r *Registry) Endpoints() []string {
	eps := make([]string, 0, len(r.widgets))
	for k := range r.widgets {
		eps = append(eps, k)
	}
	sort.Strings(eps)
	return eps
}

// Count returns the number of registered widgets.
func (r *Registry) Count() int { return len(r.widgets) }

// Validate checks that every widget id referenced by the dashboard's tabs
// and parameter groups exists in the registry.
func (r *Registry) Validate(d *model.Dashboard) error {
	for tabID, tab := range d.Tabs {
		for _, p := range tab.Layout {
			if !r.Has(p.WidgetID) {
				return fmt.Errorf("tab %q references unknown widget %q", tabID, p.WidgetID)
			}
		}
	}
	for _, g := range d.Groups {
		for _, id := range g.WidgetIDs {
			if !r.Has(id) {
				return fmt.Errorf("parameter group %q references unknown widget %q", g.Name, id)
			}
		}
	}
	return nil
}
