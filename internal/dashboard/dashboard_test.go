package dashboard

import (
	"strings"
	"testing"

	"github.com/virattt/openbb-financialdatasets-backend/internal/widget"
)

func TestLoad_EmbeddedConfig(t *testing.T) {
	d, err := Load(widget.DefaultCatalog())
	if err != nil {
		t.Fatalf("embedded apps.json must validate: %v", err)
	}
	if d.Name == "" {
		t.Error("dashboard has no name")
	}
	if len(d.Tabs) == 0 {
		t.Error("dashboard has no tabs")
	}
	for id, tab := range d.Tabs {
		if tab.ID != id {
			t.Errorf("tab key %q does not match tab id %q", id, tab.ID)
		}
		if len(tab.Layout) == 0 {
			t.Errorf("tab %q has an empty layout", id)
		}
	}
	if len(d.Groups) == 0 {
		t.Error("expected parameter groups")
	}
}

func TestParse_RejectsUnknownWidget(t *testing.T) {
	raw := []byte(`{
		"name": "Broken",
		"tabs": {
			"t": {"id": "t", "name": "T", "layout": [{"i": "nope", "x": 0, "y": 0, "w": 10, "h": 5}]}
		}
	}`)
	_, err := Parse(raw, widget.DefaultCatalog())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should name the unknown widget: %v", err)
	}
}

func TestParse_RejectsEmpty(t *testing.T) {
	reg := widget.DefaultCatalog()
	if _, err := Parse([]byte(`{}`), reg); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := Parse([]byte(`{"name":"x"}`), reg); err == nil {
		t.Error("expected error for missing tabs")
	}
	if _, err := Parse([]byte(`not json`), reg); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
