package model

// WidgetConfig describes a single OpenBB Workspace widget: where its data
// comes from, how it is laid out on the grid and which parameters drive it.
// The JSON shape follows the Workspace widgets.json schema.
type WidgetConfig struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Subcategory string     `json:"subcategory,omitempty"`
	Type        string     `json:"type,omitempty"`
	WidgetType  string     `json:"widgetType,omitempty"`
	WidgetID    string     `json:"widgetId,omitempty"`
	Endpoint    string     `json:"endpoint"`
	WSEndpoint  string     `json:"wsEndpoint,omitempty"`
	GridData    *GridData  `json:"gridData,omitempty"`
	Data        *DataDef   `json:"data,omitempty"`
	Params      []ParamDef `json:"params,omitempty"`
}

// GridData is the default size of a widget on the dashboard grid.
type GridData struct {
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`
	W int `json:"w"`
	H int `json:"h"`
}

// DataDef configures how the Workspace renders the widget's payload.
type DataDef struct {
	WSRowIDColumn string    `json:"wsRowIdColumn,omitempty"`
	Table         *TableDef `json:"table,omitempty"`
}

// TableDef holds table rendering options and column definitions.
type TableDef struct {
	ShowAll     bool        `json:"showAll"`
	ColumnsDefs []ColumnDef `json:"columnsDefs,omitempty"`
}

// ColumnDef describes one table column (ordering, width, pinning, renderer).
type ColumnDef struct {
	Field          string         `json:"field"`
	HeaderName     string         `json:"headerName"`
	Width          int            `json:"width,omitempty"`
	CellDataType   string         `json:"cellDataType,omitempty"`
	Pinned         string         `json:"pinned,omitempty"`
	RenderFn       string         `json:"renderFn,omitempty"`
	RenderFnParams map[string]any `json:"renderFnParams,omitempty"`
}

// ParamDef is a widget input parameter.
type ParamDef struct {
	Type            string         `json:"type"`
	ParamName       string         `json:"paramName"`
	Label           string         `json:"label,omitempty"`
	Value           string         `json:"value,omitempty"`
	Description     string         `json:"description,omitempty"`
	MultiSelect     bool           `json:"multiSelect,omitempty"`
	Options         []Option       `json:"options,omitempty"`
	OptionsEndpoint string         `json:"optionsEndpoint,omitempty"`
	Style           map[string]any `json:"style,omitempty"`
}

// Option is a selectable label/value pair, also used by the options
// endpoints (/stock_tickers, /institutional_investors).
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
