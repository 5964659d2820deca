package model

// Dashboard is one OpenBB Workspace app: a set of tabs with widget
// placements plus parameter groups shared across widgets. Loaded once at
// startup from the embedded apps.json; read-only afterwards.
type Dashboard struct {
	Name               string         `json:"name"`
	Description        string         `json:"description,omitempty"`
	Img                string         `json:"img,omitempty"`
	ImgDark            string         `json:"img_dark,omitempty"`
	ImgLight           string         `json:"img_light,omitempty"`
	AllowCustomization bool           `json:"allowCustomization,omitempty"`
	Tabs               map[string]Tab `json:"tabs"`
	Groups             []ParamGroup   `json:"groups,omitempty"`
}

// Tab is a named dashboard page with an ordered list of widget placements.
type Tab struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Layout []WidgetPlacement `json:"layout"`
}

// WidgetPlacement pins a widget to grid coordinates. State carries optional
// per-widget UI state (column ordering/pinning, chart model).
type WidgetPlacement struct {
	WidgetID string       `json:"i"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
	W        int          `json:"w"`
	H        int          `json:"h"`
	State    *WidgetState `json:"state,omitempty"`
}

// WidgetState is opaque UI state passed through to the Workspace unchanged.
type WidgetState struct {
	Params      map[string]any `json:"params,omitempty"`
	ColumnState map[string]any `json:"columnState,omitempty"`
	ChartModel  map[string]any `json:"chartModel,omitempty"`
}

// ParamGroup broadcasts one input (e.g. ticker) to several widgets.
type ParamGroup struct {
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"`
	ParamName    string   `json:"paramName"`
	DefaultValue string   `json:"defaultValue,omitempty"`
	WidgetIDs    []string `json:"widgetIds"`
}
