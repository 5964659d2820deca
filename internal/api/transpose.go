package api

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Fields that identify a statement rather than carry a metric value.
var statementMetaFields = map[string]bool{
	"ticker":        true,
	"period":        true,
	"fiscal_period": true,
	"currency":      true,
	"report_period": true,
}

// transposeStatements pivots a list of financial statements into one row per
// metric with report periods as columns, newest period first. Numeric values
// are rounded to two decimal places.
func transposeStatements(statements []map[string]any) []map[string]any {
	if len(statements) == 0 {
		return []map[string]any{}
	}

	byPeriod := make(map[string]map[string]any)
	var periods []string
	keySet := make(map[string]bool)

	for _, stmt := range statements {
		period, _ := formatTimestamp(stmt["report_period"], "2006-01-02").(string)
		if period == "" {
			continue
		}
		if _, seen := byPeriod[period]; !seen {
			periods = append(periods, period)
		}
		byPeriod[period] = stmt
		for k := range stmt {
			if !statementMetaFields[k] {
				keySet[k] = true
			}
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(periods)))

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]map[string]any, 0, len(keys))
	for _, key := range keys {
		row := map[string]any{"metric": titleWords(key)}
		for _, period := range periods {
			row[period] = roundValue(byPeriod[period][key])
		}
		rows = append(rows, row)
	}
	return rows
}

// roundValue rounds numeric values to 2 decimal places; everything else
// passes through untouched.
func roundValue(v any) any {
	f, ok := v.(float64)
	if !ok {
		return v
	}
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
