package widget

import "github.com/virattt/openbb-financialdatasets-backend/internal/model"

// Shared parameter definitions. The free tier of the upstream API only
// serves AAPL, MSFT and TSLA, so ticker params point at /stock_tickers.
func tickerParam(value, desc string) model.ParamDef {
	return model.ParamDef{
		Type:            "endpoint",
		ParamName:       "ticker",
		Label:           "Symbol",
		Value:           value,
		Description:     desc,
		OptionsEndpoint: "/stock_tickers",
	}
}

func periodParam() model.ParamDef {
	return model.ParamDef{
		Type:        "text",
		ParamName:   "period",
		Label:       "Period",
		Value:       "annual",
		Description: "Period to get statements from",
		Options: []model.Option{
			{Value: "annual", Label: "Annual"},
			{Value: "quarterly", Label: "Quarterly"},
			{Value: "ttm", Label: "TTM"},
		},
	}
}

func limitParam(label, value, desc string) model.ParamDef {
	return model.ParamDef{
		Type:        "number",
		ParamName:   "limit",
		Label:       label,
		Value:       value,
		Description: desc,
	}
}

func intervalParams() []model.ParamDef {
	return []model.ParamDef{
		{
			Type:        "text",
			ParamName:   "interval",
			Label:       "Interval",
			Value:       "day",
			Description: "Time interval for prices",
			Options: []model.Option{
				{Value: "minute", Label: "Minute"},
				{Value: "day", Label: "Day"},
				{Value: "week", Label: "Week"},
				{Value: "month", Label: "Month"},
				{Value: "year", Label: "Year"},
			},
		},
		{
			Type:        "number",
			ParamName:   "interval_multiplier",
			Label:       "Interval Multiplier",
			Value:       "1",
			Description: "Multiplier for the interval (e.g., 5 for every 5 minutes)",
		},
		{
			Type:        "date",
			ParamName:   "start_date",
			Label:       "Start Date",
			Value:       "2024-01-01",
			Description: "Start date for historical data",
		},
		{
			Type:        "date",
			ParamName:   "end_date",
			Label:       "End Date",
			Value:       "2024-03-20",
			Description: "End date for historical data",
		},
	}
}

func statementWidget(name, desc, widgetID, tickerDesc string) model.WidgetConfig {
	return model.WidgetConfig{
		Name:        name,
		Description: desc,
		Category:    "Equity",
		Subcategory: "Financials",
		WidgetType:  "individual",
		WidgetID:    widgetID,
		Endpoint:    widgetID,
		GridData:    &model.GridData{W: 80, H: 12},
		Data:        &model.DataDef{Table: &model.TableDef{ShowAll: true}},
		Params: []model.ParamDef{
			tickerParam("AAPL", tickerDesc),
			periodParam(),
			limitParam("Number of Statements", "10", "Number of statements to display"),
		},
	}
}

// DefaultCatalog registers every widget this backend serves.
func DefaultCatalog() *Registry {
	r := NewRegistry()

	r.Register(statementWidget(
		"Income Statement",
		"Financial statements that provide information about a company's revenues, expenses, and profits over a specific period.",
		"income",
		"Ticker to get income statement for (Free tier: AAPL, MSFT, TSLA)",
	))
	r.Register(statementWidget(
		"Balance Sheet",
		"A financial statement that summarizes a company's assets, liabilities and shareholders' equity at a specific point in time.",
		"balance",
		"Ticker to get balance sheet for (Free tier: AAPL, MSFT, TSLA)",
	))
	r.Register(statementWidget(
		"Cash Flow Statement",
		"Financial statements that provide information about a company's cash inflows and outflows over a specific period.",
		"cash_flow",
		"Ticker to get cash flow statement for (Free tier: AAPL, MSFT, TSLA)",
	))
	r.Register(statementWidget(
		"Financial Metrics",
		"Key financial metrics and ratios derived from company statements.",
		"financial_metrics",
		"Ticker to get financial metrics for (Free tier: AAPL, MSFT, TSLA)",
	))

	r.Register(model.WidgetConfig{
		Name:        "Company Facts",
		Description: "Get key company information including name, CIK, market cap, total employees, website URL, and more.",
		Category:    "Equity",
		Subcategory: "Company Info",
		WidgetType:  "individual",
		WidgetID:    "company_facts",
		Endpoint:    "company_facts",
		GridData:    &model.GridData{W: 10, H: 12},
		Data: &model.DataDef{Table: &model.TableDef{
			ShowAll: true,
			ColumnsDefs: []model.ColumnDef{
				{Field: "fact", HeaderName: "Fact", Width: 200},
				{Field: "value", HeaderName: "Value", Width: 200},
			},
		}},
		Params: []model.ParamDef{
			tickerParam("AAPL", "Ticker to get company facts for"),
		},
	})

	r.Register(model.WidgetConfig{
		Name:        "Stock News",
		Description: "Get recent news articles for stocks, including headlines, publish dates, and article summaries.",
		Category:    "Equity",
		Subcategory: "News",
		Type:        "table",
		WidgetID:    "stock_news",
		Endpoint:    "stock_news",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{Table: &model.TableDef{
			ShowAll: true,
			ColumnsDefs: []model.ColumnDef{
				{Field: "date", HeaderName: "Date", Width: 180, CellDataType: "text", Pinned: "left"},
				{Field: "title", HeaderName: "Title", Width: 300, CellDataType: "text"},
				{Field: "source", HeaderName: "Source", Width: 150, CellDataType: "text"},
				{Field: "author", HeaderName: "Author", Width: 150, CellDataType: "text"},
				{Field: "sentiment", HeaderName: "Sentiment", Width: 120, CellDataType: "text"},
				{Field: "url", HeaderName: "URL", Width: 200, CellDataType: "text"},
			},
		}},
		Params: []model.ParamDef{
			tickerParam("MSFT", "Stock ticker to get news for (Free tier: AAPL, MSFT, TSLA)"),
			limitParam("Number of Articles", "10", "Maximum number of news articles to display"),
		},
	})

	r.Register(model.WidgetConfig{
		Name:        "Stock Prices Snapshot",
		Description: "Get real-time price snapshot for stocks with live updates.",
		Category:    "Equity",
		Subcategory: "Prices",
		Type:        "live_grid",
		WidgetID:    "stock_snapshot",
		Endpoint:    "stock_snapshot",
		WSEndpoint:  "stock_ws",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{
			WSRowIDColumn: "ticker",
			Table: &model.TableDef{
				ShowAll: true,
				ColumnsDefs: []model.ColumnDef{
					{Field: "ticker", HeaderName: "Symbol", Width: 120, CellDataType: "text", Pinned: "left"},
					{Field: "price", HeaderName: "Price", Width: 120, CellDataType: "number",
						RenderFn: "showCellChange", RenderFnParams: map[string]any{"colorValueKey": "change_percent"}},
					{Field: "volume", HeaderName: "Volume", Width: 150, CellDataType: "number"},
					{Field: "change_percent", HeaderName: "Change %", Width: 120, CellDataType: "number", RenderFn: "greenRed"},
					{Field: "timestamp", HeaderName: "Last Updated", Width: 180, CellDataType: "text"},
				},
			},
		},
		Params: []model.ParamDef{{
			Type:            "endpoint",
			ParamName:       "ticker",
			Label:           "Symbol",
			Value:           "AAPL",
			Description:     "Select stocks to track (Free tier: AAPL, MSFT, TSLA)",
			MultiSelect:     true,
			OptionsEndpoint: "/stock_tickers",
		}},
	})

	r.Register(model.WidgetConfig{
		Name:        "Stock Prices Historical",
		Description: "Get historical price data for stocks with customizable intervals and date ranges.",
		Category:    "Equity",
		Subcategory: "Prices",
		Type:        "table",
		WidgetID:    "stock_prices_historical",
		Endpoint:    "stock_prices_historical",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{Table: &model.TableDef{
			ShowAll: true,
			ColumnsDefs: []model.ColumnDef{
				{Field: "time", HeaderName: "Time", Width: 180, CellDataType: "text", Pinned: "left"},
				{Field: "open", HeaderName: "Open", Width: 120, CellDataType: "number"},
				{Field: "high", HeaderName: "High", Width: 120, CellDataType: "number"},
				{Field: "low", HeaderName: "Low", Width: 120, CellDataType: "number"},
				{Field: "close", HeaderName: "Close", Width: 120, CellDataType: "number"},
				{Field: "volume", HeaderName: "Volume", Width: 120, CellDataType: "number"},
				{Field: "vwap", HeaderName: "VWAP", Width: 120, CellDataType: "number"},
				{Field: "transactions", HeaderName: "Transactions", Width: 120, CellDataType: "number"},
			},
		}},
		Params: append(
			[]model.ParamDef{tickerParam("AAPL", "Stock ticker to get historical prices for (Free tier: AAPL, MSFT, TSLA)")},
			intervalParams()...,
		),
	})

	r.Register(model.WidgetConfig{
		Name:        "Crypto Prices",
		Description: "Get historical price data for cryptocurrencies with customizable intervals and date ranges.",
		Category:    "Crypto",
		Subcategory: "Prices",
		Type:        "table",
		WidgetID:    "crypto_prices",
		Endpoint:    "crypto_prices",
		GridData:    &model.GridData{W: 40, H: 8},
		Data:        &model.DataDef{Table: &model.TableDef{ShowAll: true}},
		Params: append(
			[]model.ParamDef{{
				Type:        "text",
				ParamName:   "ticker",
				Label:       "Symbol",
				Value:       "BTC-USD",
				Description: "Crypto pair to get historical prices for",
			}},
			intervalParams()...,
		),
	})

	r.Register(model.WidgetConfig{
		Name:        "Crypto Snapshot",
		Description: "Get real-time price snapshot for cryptocurrencies with live updates.",
		Category:    "Crypto",
		Subcategory: "Prices",
		Type:        "live_grid",
		WidgetID:    "crypto_snapshot",
		Endpoint:    "crypto_snapshot",
		WSEndpoint:  "crypto_ws",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{
			WSRowIDColumn: "ticker",
			Table: &model.TableDef{
				ShowAll: true,
				ColumnsDefs: []model.ColumnDef{
					{Field: "ticker", HeaderName: "Symbol", Width: 120, CellDataType: "text"},
					{Field: "price", HeaderName: "Price", Width: 120, CellDataType: "number",
						RenderFn: "showCellChange", RenderFnParams: map[string]any{"colorValueKey": "change_24h"}},
					{Field: "volume_24h", HeaderName: "24h Volume", Width: 150, CellDataType: "number"},
					{Field: "change_24h", HeaderName: "24h Change", Width: 120, CellDataType: "number", RenderFn: "greenRed"},
					{Field: "timestamp", HeaderName: "Last Updated", Width: 180, CellDataType: "text"},
				},
			},
		},
		Params: []model.ParamDef{{
			Type:        "text",
			ParamName:   "ticker",
			Label:       "Symbol",
			Value:       "BTC-USD",
			Description: "Select cryptocurrencies to track",
			MultiSelect: true,
			Options:     []model.Option{{Label: "Bitcoin (BTC-USD)", Value: "BTC-USD"}},
		}},
	})

	r.Register(model.WidgetConfig{
		Name:        "Earnings Press Releases",
		Description: "Get earnings-related press releases for companies, including URL, publish date, and full text.",
		Category:    "Equity",
		Subcategory: "Earnings",
		Type:        "markdown",
		WidgetID:    "earnings_press_releases",
		Endpoint:    "earnings_press_releases",
		GridData:    &model.GridData{W: 40, H: 8},
		Params: []model.ParamDef{{
			Type:            "endpoint",
			ParamName:       "ticker",
			Label:           "Symbol",
			Value:           "AAL",
			Description:     "Company ticker to get earnings press releases for",
			OptionsEndpoint: "/earnings_press_releases/tickers",
		}},
	})

	r.Register(model.WidgetConfig{
		Name:        "Insider Trades",
		Description: "Get insider trading activity for stocks, including transaction details, shares traded, and transaction values.",
		Category:    "Equity",
		Subcategory: "Trading",
		Type:        "table",
		WidgetID:    "insider_trades",
		Endpoint:    "insider_trades",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{Table: &model.TableDef{
			ShowAll: true,
			ColumnsDefs: []model.ColumnDef{
				{Field: "transaction_date", HeaderName: "Date", Width: 180, CellDataType: "text", Pinned: "left"},
				{Field: "insider_name", HeaderName: "Insider", Width: 200, CellDataType: "text"},
				{Field: "transaction_type", HeaderName: "Type", Width: 120, CellDataType: "text"},
				{Field: "shares", HeaderName: "Shares", Width: 120, CellDataType: "number"},
				{Field: "price", HeaderName: "Price", Width: 120, CellDataType: "number"},
				{Field: "value", HeaderName: "Value", Width: 150, CellDataType: "number"},
				{Field: "ownership_type", HeaderName: "Ownership", Width: 150, CellDataType: "text"},
			},
		}},
		Params: []model.ParamDef{
			tickerParam("AAPL", "Stock ticker to get insider trades for (Free tier: AAPL, MSFT, TSLA)"),
			limitParam("Number of Trades", "50", "Maximum number of insider trades to display"),
		},
	})

	r.Register(model.WidgetConfig{
		Name:        "Institutional Ownership by Investor",
		Description: "Get institutional ownership data showing holdings of major investors like Berkshire Hathaway, BlackRock, and Vanguard.",
		Category:    "Equity",
		Subcategory: "Ownership",
		Type:        "table",
		WidgetID:    "institutional_ownership_by_investor",
		Endpoint:    "institutional_ownership_by_investor",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{Table: &model.TableDef{
			ShowAll: true,
			ColumnsDefs: []model.ColumnDef{
				{Field: "ticker", HeaderName: "Symbol", Width: 120, CellDataType: "text", Pinned: "left"},
				{Field: "company_name", HeaderName: "Company", Width: 200, CellDataType: "text"},
				{Field: "shares", HeaderName: "Shares", Width: 150, CellDataType: "number"},
				{Field: "value", HeaderName: "Value", Width: 150, CellDataType: "number"},
				{Field: "weight", HeaderName: "Weight %", Width: 120, CellDataType: "number"},
				{Field: "report_date", HeaderName: "Report Date", Width: 180, CellDataType: "text"},
			},
		}},
		Params: []model.ParamDef{
			{
				Type:            "endpoint",
				ParamName:       "investor",
				Label:           "Investor",
				Value:           "BERKSHIRE_HATHAWAY_INC",
				Description:     "Institutional investor name",
				OptionsEndpoint: "/institutional_investors",
				Style:           map[string]any{"popupWidth": 450},
			},
			limitParam("Number of Holdings", "100", "Maximum number of holdings to display"),
		},
	})

	r.Register(model.WidgetConfig{
		Name:        "Institutional Ownership by Ticker",
		Description: "Get institutional ownership data showing which institutions hold a specific stock.",
		Category:    "Equity",
		Subcategory: "Ownership",
		Type:        "table",
		WidgetID:    "institutional_ownership_by_ticker",
		Endpoint:    "institutional_ownership_by_ticker",
		GridData:    &model.GridData{W: 40, H: 8},
		Data: &model.DataDef{Table: &model.TableDef{
			ShowAll: true,
			ColumnsDefs: []model.ColumnDef{
				{Field: "investor", HeaderName: "Investor", Width: 250, CellDataType: "text", Pinned: "left"},
				{Field: "shares", HeaderName: "Shares", Width: 150, CellDataType: "number"},
				{Field: "value", HeaderName: "Value", Width: 150, CellDataType: "number"},
				{Field: "weight", HeaderName: "Weight %", Width: 120, CellDataType: "number"},
				{Field: "report_date", HeaderName: "Report Date", Width: 180, CellDataType: "text"},
			},
		}},
		Params: []model.ParamDef{
			tickerParam("AAPL", "Stock ticker to get institutional ownership for (Free tier: AAPL, MSFT, TSLA)"),
			limitParam("Number of Holdings", "100", "Maximum number of institutional holders to display"),
		},
	})

	return r
}
