// Package dashboard loads the static OpenBB app definition bundled with the
// binary and checks it against the widget registry. The definition is
// immutable after load; there is no write path.
package dashboard

import (
	"encoding/json"
	"fmt"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
	"github.com/virattt/openbb-financialdatasets-backend/internal/widget"
	"github.com/virattt/openbb-financialdatasets-backend/web"
)

// Load parses the embedded apps.json and validates every widget reference
// against the registry.
func Load(reg *widget.Registry) (*model.Dashboard, error) {
	raw, err := web.AppsJSON()
	if err != nil {
		return nil, fmt.Errorf("read apps.json: %w", err)
	}
	return Parse(raw, reg)
}

// Parse decodes and validates a dashboard definition.
func Parse(raw []byte, reg *widget.Registry) (*model.Dashboard, error) {
	var d model.Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse apps.json: %w", err)
	}
	if d.Name == "" {
		return nil, fmt.Errorf("apps.json: missing app name")
	}
	if len(d.Tabs) == 0 {
		return nil, fmt.Errorf("apps.json: app %q has no tabs", d.Name)
	}
	if err := reg.Validate(&d); err != nil {
		return nil, fmt.Errorf("apps.json: %w", err)
	}
	return &d, nil
}
