package api

import (
	"reflect"
	"testing"
)

func TestTransposeStatements(t *testing.T) {
	statements := []map[string]any{
		{
			"ticker":        "AAPL",
			"report_period": "2023-09-30",
			"period":        "annual",
			"currency":      "USD",
			"revenue":       383285000000.0,
			"gross_margin":  0.441311,
		},
		{
			"ticker":        "AAPL",
			"report_period": "2024-09-28",
			"period":        "annual",
			"currency":      "USD",
			"revenue":       391035000000.0,
			"gross_margin":  0.462063,
		},
	}

	rows := transposeStatements(statements)
	if len(rows) != 2 {
		t.Fatalf("expected 2 metric rows, got %d", len(rows))
	}

	// Metrics sorted alphabetically, meta fields dropped.
	if rows[0]["metric"] != "Gross Margin" || rows[1]["metric"] != "Revenue" {
		t.Fatalf("metric order = %v, %v", rows[0]["metric"], rows[1]["metric"])
	}
	for _, row := range rows {
		for _, meta := range []string{"ticker", "period", "currency", "report_period"} {
			if _, ok := row[meta]; ok {
				t.Errorf("meta field %q leaked into row %v", meta, row)
			}
		}
	}

	// Ratios rounded to two decimals.
	if rows[0]["2024-09-28"] != 0.46 {
		t.Errorf("gross margin 2024 = %v, want 0.46", rows[0]["2024-09-28"])
	}
	if rows[1]["2023-09-30"] != 383285000000.0 {
		t.Errorf("revenue 2023 = %v", rows[1]["2023-09-30"])
	}
}

func TestTransposeStatements_Empty(t *testing.T) {
	rows := transposeStatements(nil)
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty slice, got %v", rows)
	}
}

func TestTransposeStatements_SkipsRowsWithoutPeriod(t *testing.T) {
	rows := transposeStatements([]map[string]any{
		{"revenue": 1.0},
		{"report_period": "2024-09-28", "revenue": 2.0},
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, ok := rows[0]["2024-09-28"]; !ok {
		t.Errorf("missing period column: %v", rows[0])
	}
}

func TestRoundValue(t *testing.T) {
	if got := roundValue(1.23456); got != 1.23 {
		t.Errorf("roundValue(1.23456) = %v", got)
	}
	if got := roundValue("n/a"); got != "n/a" {
		t.Errorf("non-numeric value changed: %v", got)
	}
	if got := roundValue(nil); got != nil {
		t.Errorf("nil changed: %v", got)
	}
}

func TestTitleWords(t *testing.T) {
	cases := map[string]string{
		"market_cap":             "Market Cap",
		"BERKSHIRE_HATHAWAY_INC": "Berkshire Hathaway Inc",
		"name":                   "Name",
		"weighted average shares": "Weighted Average Shares",
	}
	for in, want := range cases {
		if got := titleWords(in); got != want {
			t.Errorf("titleWords(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp("2024-03-20T15:30:00Z", "2006-01-02 15:04:05"); got != "2024-03-20 15:30:00" {
		t.Errorf("got %v", got)
	}
	// Plain dates and non-strings pass through.
	if got := formatTimestamp("2024-03-20", "2006-01-02"); got != "2024-03-20" {
		t.Errorf("got %v", got)
	}
	if got := formatTimestamp(42.0, "2006-01-02"); got != 42.0 {
		t.Errorf("got %v", got)
	}
}

func TestSplitTickers(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"AAPL", []string{"AAPL"}},
		{"AAPL, MSFT ,TSLA", []string{"AAPL", "MSFT", "TSLA"}},
		{" , ", nil},
		{"", nil},
	}
	for _, c := range cases {
		if got := splitTickers(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitTickers(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseTickerValue(t *testing.T) {
	if got := parseTickerValue([]byte(`"AAPL,MSFT"`)); !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("string form: %v", got)
	}
	if got := parseTickerValue([]byte(`["AAPL"," MSFT "]`)); !reflect.DeepEqual(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("array form: %v", got)
	}
	if got := parseTickerValue([]byte(`42`)); got != nil {
		t.Errorf("invalid form: %v", got)
	}
}
