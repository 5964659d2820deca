package widget

import (
	"testing"

	"github.com/virattt/openbb-financialdatasets-backend/internal/model"
)

func TestRegister_IDDefaultsToEndpoint(t *testing.T) {
	r := NewRegistry()
	r.Register(model.WidgetConfig{Name: "Test", Endpoint: "income"})

	all := r.All()
	w, ok := all["income"]
	if !ok {
		t.Fatal("widget not registered under its endpoint")
	}
	if w.ID != "income" {
		t.Errorf("ID = %q, want %q", w.ID, "income")
	}
}

func TestRegister_NoEndpointIgnored(t *testing.T) {
	r := NewRegistry()
	r.Register(model.WidgetConfig{Name: "Nameless"})
	if r.Count() != 0 {
		t.Errorf("expected empty registry, got %d widgets", r.Count())
	}
}

func TestDefaultCatalog(t *testing.T) {
	r := DefaultCatalog()
	want := []string{
		"income", "balance", "cash_flow", "financial_metrics", "company_facts",
		"stock_news", "stock_snapshot", "stock_prices_historical",
		"crypto_prices", "crypto_snapshot", "earnings_press_releases",
		"insider_trades", "institutional_ownership_by_investor",
		"institutional_ownership_by_ticker",
	}
	for _, ep := range want {
		if !r.Has(ep) {
			t.Errorf("catalog missing widget %q", ep)
		}
	}
	if r.Count() != len(want) {
		t.Errorf("catalog has %d widgets, want %d", r.Count(), len(want))
	}

	// Live widgets must name their WebSocket endpoint and row id column.
	for _, ep := range []string{"stock_snapshot", "crypto_snapshot"} {
		w := r.All()[ep]
		if w.WSEndpoint == "" {
			t.Errorf("%s: missing wsEndpoint", ep)
		}
		if w.Data == nil || w.Data.WSRowIDColumn != "ticker" {
			t.Errorf("%s: wsRowIdColumn must be ticker", ep)
		}
	}
}

func TestValidate(t *testing.T) {
	r := DefaultCatalog()

	ok := &model.Dashboard{
		Name: "ok",
		Tabs: map[string]model.Tab{
			"overview": {ID: "overview", Layout: []model.WidgetPlacement{
				{WidgetID: "income", X: 0, Y: 0, W: 40, H: 12},
			}},
		},
		Groups: []model.ParamGroup{
			{Name: "Group 1", ParamName: "ticker", WidgetIDs: []string{"income", "stock_news"}},
		},
	}
	if err := r.Validate(ok); err != nil {
		t.Fatalf("valid dashboard rejected: %v", err)
	}

	badGroup := &model.Dashboard{
		Name: "bad",
		Groups: []model.ParamGroup{
			{Name: "Group 1", ParamName: "ticker", WidgetIDs: []string{"no_such_widget"}},
		},
	}
	if err := r.Validate(badGroup); err == nil {
		t.Error("expected error for group referencing unknown widget")
	}

	badTab := &model.Dashboard{
		Name: "bad",
		Tabs: map[string]model.Tab{
			"t": {ID: "t", Layout: []model.WidgetPlacement{{WidgetID: "ghost"}}},
		},
	}
	if err := r.Validate(badTab); err == nil {
		t.Error("expected error for tab referencing unknown widget")
	}
}
