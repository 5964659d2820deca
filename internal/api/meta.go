package api

import (
	"net/http"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
	"github.com/virattt/openbb-financialdatasets-backend/internal/widget"
)

// metaAPI serves the Workspace bootstrap documents: the banner, the widget
// registry and the app (dashboard) definition.
type metaAPI struct {
	registry  *widget.Registry
	dashboard *model.Dashboard
}

func (a *metaAPI) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"Info": "Financial Datasets to integrate with OpenBB",
	})
}

func (a *metaAPI) widgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.registry.All())
}

func (a *metaAPI) apps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.dashboard)
}
