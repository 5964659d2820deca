package api

import (
	"net/http"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
	"github.com/virattt/openbb-financialdatasets-backend/internal/store"
)

type usageAPI struct {
	store *store.Store
	hub   *Hub
}

func (a *usageAPI) summary(w http.ResponseWriter, r *http.Request) {
	usage, err := a.store.UsageSummary()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if usage == nil {
		usage = []model.EndpointUsage{}
	}
	report := model.UsageReport{Endpoints: usage}
	if a.hub != nil {
		report.WSConnections = a.hub.ClientCount()
	}
	writeJSON(w, http.StatusOK, report)
}
